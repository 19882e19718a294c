package utils

import (
	"strconv"

	tele "gopkg.in/telebot.v3"
)

// Main menu labels, matched by the text handler.
const (
	BtnCompanies = "🏢 Companies"
	BtnJobs      = "💼 Jobs"
	BtnHelp      = "❓ Help"
)

// Callback endpoints of the inline pagination buttons.
const (
	CompaniesPageUnique = "companies_page"
	JobsPageUnique      = "jobs_page"
	NoopUnique          = "page_noop"

	// Telegram rejects callback data longer than this.
	maxCallbackData = 64
)

func MainMenuKeyboard() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}

	menu.Reply(
		menu.Row(menu.Text(BtnCompanies), menu.Text(BtnJobs)),
		menu.Row(menu.Text(BtnHelp)),
	)

	return menu
}

// InlinePaginationKeyboard builds prev/current/next buttons for unique.
// payload renders the button data for a page. It returns nil when there is
// a single page or the data would not fit in a callback.
func InlinePaginationKeyboard(page, totalPages int, unique string, payload func(page int) string) *tele.ReplyMarkup {
	// no pagination needed
	if totalPages <= 1 {
		return nil
	}

	menu := &tele.ReplyMarkup{}
	var buttons []tele.Btn

	if page > 0 {
		data := payload(page - 1)
		if !fitsCallback(unique, data) {
			return nil
		}
		buttons = append(buttons, menu.Data("⬅️ Back", unique, data))
	}

	// show 1-based current page like "2/7"
	buttons = append(buttons, menu.Data(strconv.Itoa(page+1)+"/"+strconv.Itoa(totalPages), NoopUnique))

	if page < totalPages-1 {
		data := payload(page + 1)
		if !fitsCallback(unique, data) {
			return nil
		}
		buttons = append(buttons, menu.Data("Next ➡️", unique, data))
	}

	menu.Inline(menu.Row(buttons...))
	return menu
}

// telebot sends "\f" + unique + "|" + data
func fitsCallback(unique, data string) bool {
	return len(unique)+len(data)+2 <= maxCallbackData
}
