package bot

const (
	MsgGreeting      = "👋 Hello! I'm ready."
	MsgAddFormat     = "❌ Format: /add HH:MM - HH:MM | description"
	MsgAddTemplate   = "Type it like this: /add 15:30 - 16:00 | description"
	MsgEmpty         = "✅ Nothing left!"
	MsgInvalidNumber = "❌ Please enter a valid number."
)
