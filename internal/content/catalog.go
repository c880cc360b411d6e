package content

import (
	"strings"

	"github.com/cnbridge/leadbot/internal/domain"
)

// Service is one card of the services menu.
type Service struct {
	Slug    string
	Button  string
	Label   string
	Image   string
	Caption string
	// Course adds the exchange rate link to the card.
	Course bool
	// Delivery adds the delivery method button to the card.
	Delivery bool
}

// Services lists the services menu in display order.
var Services = []Service{
	{
		Slug:   "delivery",
		Button: "🚚 Доставка грузов",
		Label:  domain.ServiceDelivery,
		Image:  "delivery.jpg",
		Caption: "🚚 <b>Доставка грузов из Китая</b>\n\n" +
			"Мы предлагаем различные способы доставки:\n" +
			"• Автомобильная доставка\n" +
			"• Автоэкспресс\n" +
			"• Железнодорожная доставка\n" +
			"• Авиадоставка\n\n" +
			"Выберите подходящий способ доставки или получите консультацию.",
		Delivery: true,
	},
	{
		Slug:   "money",
		Button: "💰 Перевод денег",
		Label:  "Перевод денег",
		Image:  "money.jpg",
		Caption: "💰 <b>Перевод денег в Китай</b>\n\n" +
			"Быстрый и безопасный перевод денег в Китай по выгодному курсу.\n\n" +
			"• Минимальные комиссии\n" +
			"• Быстрое зачисление\n" +
			"• Безопасные переводы",
		Course: true,
	},
	{
		Slug:   "buyout",
		Button: "🛒 Выкуп товара",
		Label:  "Выкуп товара",
		Image:  "buyout.jpg",
		Caption: "🛒 <b>Выкуп товара в Китае</b>\n\n" +
			"Поможем выкупить товар у китайских поставщиков:\n" +
			"• Проверка качества\n" +
			"• Безопасная оплата\n" +
			"• Контроль процесса",
	},
	{
		Slug:   "supplier",
		Button: "🔍 Поиск поставщика",
		Label:  "Поиск поставщика",
		Image:  "supplier.jpg",
		Caption: "🔍 <b>Поиск поставщика</b>\n\n" +
			"Найдём надёжного поставщика для вашего товара:\n" +
			"• Проверка репутации\n" +
			"• Сравнение цен\n" +
			"• Контроль качества",
	},
	{
		Slug:   "samples",
		Button: "📦 Заказ образцов",
		Label:  "Заказ образцов",
		Image:  "samples.jpg",
		Caption: "📦 <b>Заказ образцов</b>\n\n" +
			"Закажем образцы товаров для проверки качества:\n" +
			"• Быстрая доставка образцов\n" +
			"• Проверка качества\n" +
			"• Детальные фото и видео",
	},
	{
		Slug:   "fulfillment",
		Button: "📋 Фулфилмент",
		Label:  "Фулфилмент",
		Image:  "fulfillment.jpg",
		Caption: "📋 <b>Фулфилмент</b>\n\n" +
			"Полный цикл обработки заказов:\n" +
			"• Хранение товаров\n" +
			"• Упаковка и отправка\n" +
			"• Обработка возвратов",
	},
	{
		Slug:   "certification",
		Button: "📜 Сертификация",
		Label:  "Сертификация",
		Image:  "certification.jpg",
		Caption: "📜 <b>Сертификация товаров</b>\n\n" +
			"Поможем получить необходимые сертификаты:\n" +
			"• Сертификаты соответствия\n" +
			"• Декларации\n" +
			"• Разрешительные документы",
	},
}

// UnknownService labels a request that did not name a service.
const UnknownService = "Не указана"

// ServiceBySlug finds a service by its callback slug.
func ServiceBySlug(slug string) (Service, bool) {
	for _, s := range Services {
		if s.Slug == slug {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceByButton finds a service by its menu label.
func ServiceByButton(label string) (Service, bool) {
	for _, s := range Services {
		if s.Button == label {
			return s, true
		}
	}
	return Service{}, false
}

// Material is a downloadable guide.
type Material struct {
	Key    string
	Button string
	File   string
}

// Materials lists the materials menu in display order.
var Materials = []Material{
	{Key: "guide1", Button: "📘 3 ошибки селлера", File: "guide1.pdf"},
	{Key: "guide2", Button: "📗 Как выйти на маркетплейсы в 2025", File: "guide2.pdf"},
}

// MaterialByKey finds a material by key.
func MaterialByKey(key string) (Material, bool) {
	for _, m := range Materials {
		if m.Key == key {
			return m, true
		}
	}
	return Material{}, false
}

// MaterialByButton finds a material by its menu label.
func MaterialByButton(label string) (Material, bool) {
	for _, m := range Materials {
		if m.Button == label {
			return m, true
		}
	}
	return Material{}, false
}

// Images of the static cards.
const (
	ImageWelcome = "welcome.jpg"
	ImageAbout   = "about.jpg"
	ImageFAQ     = "faq.jpg"
	ImageCompany = "organ.jpg"
	ImageSocials = "socials.jpg"
)

// IsDeliveryMethod reports whether label is one of DeliveryMethods.
func IsDeliveryMethod(label string) bool {
	label = strings.TrimSpace(label)
	for _, m := range DeliveryMethods {
		if m == label {
			return true
		}
	}
	return false
}
