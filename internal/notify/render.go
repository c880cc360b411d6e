package notify

import (
	"strconv"
	"strings"

	"github.com/cnbridge/leadbot/core/telegram/format"
	"github.com/cnbridge/leadbot/internal/domain"
)

const (
	noName     = "не указано"
	noUsername = "не указан"
	noPhone    = "не указан"
)

// RenderLead formats lead for the operator. Optional fields appear only when set.
func RenderLead(u domain.User, lead domain.Lead) string {
	phone := lead.Phone
	if phone == "" {
		phone = u.PhoneNumber()
	}

	var b strings.Builder
	b.WriteString("🔥 <b>Новый лид!</b>\n\n")
	b.WriteString("👤 <b>Клиент:</b>\n")
	b.WriteString("• Имя: " + orDefault(u.FullName(), noName) + "\n")
	b.WriteString("• Username: " + format.Handle(format.DerefString(u.Username, ""), noUsername) + "\n")
	b.WriteString("• Телефон: " + orDefault(phone, noPhone) + "\n")
	b.WriteString("• ID: " + strconv.FormatInt(lead.UserID, 10) + "\n\n")
	b.WriteString("🛠 <b>Услуга:</b> " + format.HTML(lead.Service))

	for _, f := range []struct{ label, value string }{
		{"📝 <b>Как обращаться:</b> ", lead.CustomerName},
		{"📦 <b>Груз:</b> ", lead.CargoName},
		{"📏 <b>Объём:</b> ", lead.CargoVolume},
		{"⚖️ <b>Вес:</b> ", lead.CargoWeight},
		{"🚚 <b>Способ доставки:</b> ", lead.DeliveryMethod},
	} {
		if v := strings.TrimSpace(f.value); v != "" {
			b.WriteString("\n" + f.label + format.HTML(v))
		}
	}
	return b.String()
}

// RenderContact formats a shared contact for the operator.
func RenderContact(u domain.User, c domain.Contact) string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	var b strings.Builder
	b.WriteString("📱 <b>Новый контакт:</b>\n\n")
	b.WriteString("👤 Имя: " + orDefault(name, noName) + "\n")
	b.WriteString("📞 Телефон: " + orDefault(c.Phone, noPhone) + "\n")
	b.WriteString("🆔 ID: " + strconv.FormatInt(u.ID, 10) + "\n")
	b.WriteString("👤 Username: " + format.Handle(format.DerefString(u.Username, ""), noUsername))
	return b.String()
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return format.HTML(s)
}
