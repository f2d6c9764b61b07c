package indicator

import (
	"fmt"
	"os"
	"strings"
)

type locale string

const (
	localeEnglish locale = "en"
	localeGerman  locale = "de"
)

type messages struct {
	workspaceFormat string
	first           string
	last            string
}

func (m messages) workspace(num int) string {
	return fmt.Sprintf(m.workspaceFormat, num)
}

func messagesFromEnv() messages {
	return localizedMessages(resolveLocale(os.Getenv("LANG")))
}

func resolveLocale(raw string) locale {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if strings.HasPrefix(raw, "de") {
		return localeGerman
	}
	return localeEnglish
}

func localizedMessages(tag locale) messages {
	switch tag {
	case localeGerman:
		return messages{
			workspaceFormat: "Arbeitsfläche %d",
			first:           "Erste Arbeitsfläche",
			last:            "Letzte Arbeitsfläche",
		}
	default:
		return messages{
			workspaceFormat: "Workspace %d",
			first:           "Already on the first workspace",
			last:            "Already on the last workspace",
		}
	}
}
