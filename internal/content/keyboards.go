package content

import (
	"cmp"

	"github.com/cnbridge/leadbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Links are the outbound URLs shown by the bot.
type Links struct {
	Website   string `yaml:"website" envconfig:"LINK_WEBSITE"`
	Reviews   string `yaml:"reviews" envconfig:"LINK_REVIEWS"`
	Course    string `yaml:"course" envconfig:"LINK_COURSE"`
	Telegram  string `yaml:"telegram"`
	Instagram string `yaml:"instagram"`
	VK        string `yaml:"vk"`
	Zen       string `yaml:"zen"`
}

// DefaultLinks are used for links left empty in the configuration.
var DefaultLinks = Links{
	Website:   "https://cnbridge.ru",
	Reviews:   "https://t.me/estasiacars",
	Course:    "https://t.me/cnchange/185",
	Telegram:  "https://t.me/cnbridgeru",
	Instagram: "https://www.instagram.com/cn.bridge",
	VK:        "https://vk.com/cnbridge",
	Zen:       "https://dzen.ru/id/67485ea7f18c29468e3620c4?share_to=link",
}

// WithDefaults fills empty links from DefaultLinks.
func (l Links) WithDefaults() Links {
	def := DefaultLinks
	l.Website = cmp.Or(l.Website, def.Website)
	l.Reviews = cmp.Or(l.Reviews, def.Reviews)
	l.Course = cmp.Or(l.Course, def.Course)
	l.Telegram = cmp.Or(l.Telegram, def.Telegram)
	l.Instagram = cmp.Or(l.Instagram, def.Instagram)
	l.VK = cmp.Or(l.VK, def.VK)
	l.Zen = cmp.Or(l.Zen, def.Zen)
	return l
}

// MainMenuKeyboard is the top level reply keyboard.
func MainMenuKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnCalc, BtnServices},
		[]string{BtnAbout, BtnReviews},
		[]string{BtnMaterials, BtnFAQ},
	)
}

// ServicesKeyboard lists the service cards two per row.
func ServicesKeyboard() *tele.ReplyMarkup {
	var rows [][]string
	for i := 0; i < len(Services); i += 2 {
		row := []string{Services[i].Button}
		if i+1 < len(Services) {
			row = append(row, Services[i+1].Button)
		}
		rows = append(rows, row)
	}
	return keyboard.ReplyButtons(append(rows, []string{BtnBack})...)
}

// DeliveryMethodsKeyboard offers the delivery methods.
func DeliveryMethodsKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		DeliveryMethods[:2],
		DeliveryMethods[2:],
		[]string{BtnBack},
	)
}

// MaterialsKeyboard lists the downloadable materials.
func MaterialsKeyboard() *tele.ReplyMarkup {
	rows := make([][]string, 0, len(Materials)+1)
	for _, m := range Materials {
		rows = append(rows, []string{m.Button})
	}
	return keyboard.ReplyButtons(append(rows, []string{BtnBack})...)
}

// ContactKeyboard asks for the phone number.
func ContactKeyboard() *tele.ReplyMarkup {
	return keyboard.ContactRequest(BtnContact, BtnBack)
}

// BackKeyboard has the single back-to-menu button.
func BackKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{BtnBack})
}

// AdminKeyboard is shown in the admin panel.
func AdminKeyboard() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnBroadcast, BtnStats},
		[]string{BtnBack},
	)
}

// AboutKeyboard links the website, the company card and the social networks.
func AboutKeyboard(l Links) *tele.ReplyMarkup {
	return keyboard.InlineButtons([]keyboard.InlineBtn{
		{Text: "🌐 Наш сайт", URL: l.Website},
		{Text: "🏢 Карточка организации", Data: CbCompanyCard},
		{Text: "📱 Наши соцсети", Data: CbSocials},
	})
}

// SocialsKeyboard links the social networks.
func SocialsKeyboard(l Links) *tele.ReplyMarkup {
	return keyboard.InlineButtonsRows(
		[]keyboard.InlineBtn{{Text: "📱 Telegram", URL: l.Telegram}, {Text: "📸 Instagram", URL: l.Instagram}},
		[]keyboard.InlineBtn{{Text: "🌐 VK", URL: l.VK}, {Text: "📰 Дзен", URL: l.Zen}},
	)
}

// ServiceKeyboard is attached to a service card.
func ServiceKeyboard(s Service, l Links) *tele.ReplyMarkup {
	get := keyboard.InlineBtn{Text: BtnGetService, Data: CbGetService + s.Slug}
	switch {
	case s.Course:
		return keyboard.InlineButtonsRows([]keyboard.InlineBtn{{Text: BtnCourse, URL: l.Course}, get})
	case s.Delivery:
		return keyboard.InlineButtons([]keyboard.InlineBtn{
			{Text: "🚚 Выбрать способ доставки", Data: CbDeliveryMethod},
			get,
		})
	default:
		return keyboard.InlineButtons([]keyboard.InlineBtn{get})
	}
}
