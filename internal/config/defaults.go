package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"telegram": map[string]interface{}{
			"bot_token":    "",
			"chat_id":      "",
			"api_url":      "https://api.telegram.org",
			"poll_timeout": 30,
		},
		"store": map[string]interface{}{
			"driver":  "sqlite",
			"path":    "~/.remind-bot/reminders.db",
			"table":   "reminders",
			"timeout": 15,
		},
		"clock": map[string]interface{}{
			"timezone": "Asia/Ho_Chi_Minh",
		},
		"scheduler": map[string]interface{}{
			"poll_interval": 60,
			"initial_delay": 5,
			"reset_spec":    "1 0 * * *", // 00:01 local
		},
		"health": map[string]interface{}{
			"enabled": true,
			"port":    8000,
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}

func GetDefaultConfigPath() string {
	return "~/.remind-bot/config.yaml"
}
