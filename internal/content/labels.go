// Package content holds the bot's texts, button labels, keyboards and the
// service and material catalogs.
package content

// Reply keyboard labels.
const (
	BtnCalc      = "📊 Получить расчёт"
	BtnServices  = "🛠 Услуги"
	BtnAbout     = "ℹ️ О нас"
	BtnReviews   = "💬 Отзывы"
	BtnMaterials = "📚 Полезные материалы"
	BtnFAQ       = "❓ FAQ"
	BtnBack      = "⬅️ Назад в меню"
	BtnContact   = "📱 Поделиться контактом"

	BtnCourse     = "📈 Курс"
	BtnGetService = "📞 Получить услугу"

	BtnBroadcast = "📢 Создать рассылку"
	BtnStats     = "📊 Статистика"
)

// Delivery method labels offered in the delivery flow.
var DeliveryMethods = []string{"🚗 Авто", "🚛 Автоэкспресс", "🚂 ЖД", "✈️ Авиа"}

// Callback keys of inline buttons.
const (
	CbCompanyCard    = "company_card"
	CbSocials        = "social_networks"
	CbGetService     = "get_service_"
	CbDeliveryMethod = "choose_delivery_method"
)

// Commands.
const (
	CmdStart = "/start"
	CmdAdmin = "/admin"
)
