package content

import (
	"fmt"
	"strings"

	"github.com/cnbridge/leadbot/internal/domain"
)

const (
	Welcome = "🎉 <b>Добро пожаловать!</b>\n\n" +
		"Я помогу вам с логистикой и доставкой грузов из Китая.\n\n" +
		"Выберите нужный раздел в меню ниже:"

	MainMenu       = "🏠 Главное меню:"
	BackHint       = "⬅️ Для возврата в меню нажмите кнопку ниже:"
	ServicesIntro  = "🛠 <b>Наши услуги:</b>\n\nВыберите интересующую услугу:"
	MaterialsIntro = "📚 <b>Полезные материалы</b>\n\nВыберите материал для скачивания:"

	About = "ℹ️ <b>О нашей компании</b>\n\n" +
		"Мы - надёжный партнёр в сфере логистики и доставки грузов из Китая.\n\n" +
		"🏢 Опыт работы более 10 лет\n" +
		"🌍 Офисы в России и Китае\n" +
		"⚡ Быстрая доставка\n" +
		"💯 Гарантия качества услуг"

	FAQ = "❓ <b>Часто задаваемые вопросы</b>\n\n" +
		"<b>Q: Сколько времени занимает доставка?</b>\n" +
		"A: От 7 до 30 дней в зависимости от способа доставки.\n\n" +
		"<b>Q: Какие документы нужны для доставки?</b>\n" +
		"A: Инвойс, упаковочный лист, при необходимости - сертификаты.\n\n" +
		"<b>Q: Есть ли страхование груза?</b>\n" +
		"A: Да, мы предоставляем страхование на все виды доставки.\n\n" +
		"<b>Q: Как отследить груз?</b>\n" +
		"A: Вы получите трек-номер для отслеживания."

	CompanyCard = "🏢 <b>Карточка организации</b>\n\n" +
		"<b>Реквизиты для оплаты:</b>\n\n" +
		"💳 <b>Расчётный счёт:</b> 40802810820000396550\n" +
		"🏦 <b>Название банка:</b> ООО \"Банк Точка\"\n" +
		"🔢 <b>БИК:</b> 044525104\n" +
		"📋 <b>Корреспондентский счёт:</b> 30101810745374525104\n" +
		"🆔 <b>ИНН:</b> 481308422231\n" +
		"📄 <b>Полное название:</b> ИП Казанцев Максим Олегович"

	Socials = "📱 <b>Выберите социальную сеть:</b>"

	AskCargoName       = "📦 Введите название груза (его описание):"
	AskCargoVolume     = "📏 Введите объём груза:"
	AskCargoWeight     = "⚖️ Введите вес груза:"
	AskCalcContact     = "📱 Для получения расчёта поделитесь контактом:"
	AskServiceContact  = "📱 Для получения услуги поделитесь контактом:"
	AskName            = "📝 Как к вам обращаться?"
	AskDeliveryMethod  = "🚚 Выберите способ доставки:"
	AskDeliveryContact = "📱 Для расчёта доставки поделитесь контактом:"
	AskMaterialContact = "📱 Для получения материала поделитесь контактом:"
	AskBroadcast       = "📝 Отправьте сообщение для рассылки:"

	LeadSent     = "✅ Ваш запрос отправлен! Мы свяжемся с вами в ближайшее время."
	ServiceSent  = "✅ Ваша заявка отправлена! Мы свяжемся с вами в ближайшее время."
	ContactSaved = "✅ Спасибо! Ваш контакт сохранён."

	FileUnavailable = "❌ Файл временно недоступен. Обратитесь к администратору."

	AdminPanel  = "🔧 <b>Админ-панель</b>"
	AdminDenied = "❌ У вас нет доступа к админ-панели"

	StatsUnavailable = "❌ Не удалось получить статистику"
	BroadcastFailed  = "❌ Не удалось получить список пользователей для рассылки"
)

// Reviews points to the reviews channel.
func Reviews(channel string) string {
	return "💬 Читайте отзывы наших клиентов: " + channel
}

// Course points to the exchange rate post.
func Course(link string) string {
	return "💱 <b>Актуальный курс валют</b>\n\nПосмотреть курс: " + link
}

// SendingMaterial announces the document that follows.
func SendingMaterial(label string) string {
	return "📄 Отправляю материал: " + label
}

// BroadcastDone reports a finished broadcast.
func BroadcastDone(sent, total int) string {
	return fmt.Sprintf("✅ Рассылка завершена!\nОтправлено: %d из %d пользователей", sent, total)
}

// Stats renders the admin statistics with the most recent broadcast runs.
func Stats(users, leads int, runs []domain.BroadcastStat) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Статистика бота:</b>\n\n👥 Всего пользователей: %d\n📝 Всего заявок: %d", users, leads)
	if len(runs) == 0 {
		return b.String()
	}
	b.WriteString("\n\n📢 <b>Последние рассылки:</b>")
	for _, r := range runs {
		fmt.Fprintf(&b, "\n• %s: %d из %d", r.StartedAt.Format("02.01.2006 15:04"), r.Sent, r.Total)
		if r.Unreachable > 0 {
			fmt.Fprintf(&b, " (недоступно: %d)", r.Unreachable)
		}
	}
	return b.String()
}
