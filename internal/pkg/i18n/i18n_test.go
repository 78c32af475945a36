package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchDefaultsToPolish(t *testing.T) {
	assert.Equal(t, language.Polish, Match(""))
	assert.Equal(t, language.Polish, Match("de-DE"))
	assert.Equal(t, language.Polish, Match("pl-PL,pl;q=0.9"))
	assert.Equal(t, language.English, Match("en-US,en;q=0.8"))
}

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Nie znaleziono zadania", T(language.Polish, "task.not_found"))
	assert.Equal(t, "Task not found", T(language.English, "task.not_found"))
	assert.Equal(t, "Nowy komentarz w zadaniu „Scena”", T(language.Polish, "notify.task_comment", "Scena"))
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	for key := range polish {
		_, ok := english[key]
		assert.True(t, ok, "missing english message for %s", key)
	}
	assert.Len(t, english, len(polish))
}
