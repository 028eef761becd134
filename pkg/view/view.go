// Package view holds the rendered-output contract between the core and the
// bot gateway: message text plus an inline keyboard of further action tokens.
package view

type Button struct {
	Text   string `json:"text"`
	Action string `json:"action"` // an action token, fed back via POST /bot/action
}

type Keyboard [][]Button

// View is one rendered screen. Notice carries an ephemeral acknowledgement
// (toast/alert on the gateway side) that does not replace the current screen;
// a View may carry only a Notice and no Text at all.
type View struct {
	Text      string   `json:"text,omitempty"`
	ParseMode string   `json:"parseMode,omitempty"` // "MarkdownV2" or empty
	Keyboard  Keyboard `json:"keyboard,omitempty"`
	Notice    string   `json:"notice,omitempty"`
	Alert     bool     `json:"alert,omitempty"` // Notice should interrupt, not toast
}

// Row is a convenience for single-row construction.
func Row(buttons ...Button) []Button { return buttons }

// NoticeOnly renders no screen change.
func NoticeOnly(text string, alert bool) *View {
	return &View{Notice: text, Alert: alert}
}
