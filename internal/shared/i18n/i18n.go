// Package i18n localizes status, history and deadline labels shown to
// companies and agency staff. Russian is the default language.
package i18n

import (
	"fmt"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Default is used when the client states no usable preference.
var Default = language.Russian

var (
	supported = []language.Tag{language.Russian, language.English, language.Uzbek}
	matcher   = language.NewMatcher(supported)
	messages  = mustBuildCatalog()
)

// Match picks the supported language for an Accept-Language header value.
func Match(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Default
	}
	return supported[idx]
}

// T renders the message stored under key. The zero tag renders in Default.
func T(tag language.Tag, key string, args ...any) string {
	if tag == language.Und {
		tag = Default
	}
	return message.NewPrinter(tag, message.Catalog(messages)).Sprintf(key, args...)
}

type entry struct {
	ru, en, uz string
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Default))
	for key, e := range simpleMessages {
		for tag, text := range map[language.Tag]string{language.Russian: e.ru, language.English: e.en, language.Uzbek: e.uz} {
			if err := b.SetString(tag, key, text); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
	}
	for key, forms := range pluralMessages {
		for tag, msg := range forms {
			if err := b.Set(tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", tag, key, err))
			}
		}
	}
	return b
}

var simpleMessages = map[string]entry{
	"status.new":                 {"Новое", "New", "Yangi"},
	"status.registered":          {"Зарегистрировано", "Registered", "Ro'yxatga olingan"},
	"status.sent_for_resolution": {"Отправлено на резолюцию", "Sent for resolution", "Rezolyutsiyaga yuborilgan"},
	"status.assigned":            {"Назначено", "Assigned", "Tayinlangan"},
	"status.in_progress":         {"В работе", "In progress", "Ijroda"},
	"status.done":                {"Выполнено", "Done", "Bajarilgan"},
	"status.cancelled":           {"Отменено", "Cancelled", "Bekor qilingan"},

	"action.created":             {"Обращение создано", "Request created", "Murojaat yaratildi"},
	"action.registered":          {"Зарегистрировано", "Registered", "Ro'yxatga olindi"},
	"action.sent_for_resolution": {"Отправлено на резолюцию", "Sent for resolution", "Rezolyutsiyaga yuborildi"},
	"action.resolved":            {"Наложена резолюция", "Resolution issued", "Rezolyutsiya qo'yildi"},
	"action.assigned":            {"Назначен исполнитель", "Assigned", "Ijrochi tayinlandi"},
	"action.status_changed":      {"Статус изменён", "Status changed", "Holat o'zgartirildi"},
	"action.step_added":          {"Добавлен шаг", "Step added", "Qadam qo'shildi"},
	"action.file_added":          {"Добавлен файл", "File added", "Fayl qo'shildi"},
	"action.done":                {"Выполнено", "Done", "Bajarildi"},
	"action.other":               {"Прочее", "Other", "Boshqa"},

	"sla.done":        {"Выполнено", "Done", "Bajarildi"},
	"sla.no_deadline": {"Без срока", "No deadline", "Muddatsiz"},
	"sla.due_today":   {"Срок сегодня", "Due today", "Muddati bugun"},
}

var pluralMessages = map[string]map[language.Tag]catalog.Message{
	"sla.days_left": {
		language.Russian: plural.Selectf(1, "%d",
			"one", "Остался %d день",
			"few", "Осталось %d дня",
			"many", "Осталось %d дней",
			"other", "Осталось %d дня"),
		language.English: plural.Selectf(1, "%d",
			"one", "%d day left",
			"other", "%d days left"),
		language.Uzbek: catalog.String("%d kun qoldi"),
	},
	"sla.overdue": {
		language.Russian: plural.Selectf(1, "%d",
			"one", "Просрочено на %d день",
			"few", "Просрочено на %d дня",
			"many", "Просрочено на %d дней",
			"other", "Просрочено на %d дня"),
		language.English: plural.Selectf(1, "%d",
			"one", "Overdue by %d day",
			"other", "Overdue by %d days"),
		language.Uzbek: catalog.String("%d kunga kechikdi"),
	},
}
