package notify

import (
	"context"
	"fmt"
	"freeroom/lib/freeroom"
	"freeroom/lib/telemetry"
	"freeroom/lib/timezone"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = telemetry.Tracer("freeroom.services.notify")

type SmtpConfig struct {
	Server       string `json:"server"`
	Port         int    `json:"port"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
}

type Options struct {
	Smtp       SmtpConfig `json:"smtp"`
	Recipients []string   `json:"recipients"`
	// link to the published report, included in the email when set
	ReportUrl string `json:"report_url"`
}

type Notifier struct {
	config Options
}

func NewNotifier(options Options) Notifier {
	return Notifier{config: options}
}

func (n Notifier) Enabled() bool {
	return len(n.config.Recipients) > 0 && n.config.Smtp.Server != ""
}

// Summary lists the number of free rooms per slot for a day.
func Summary(date time.Time, day freeroom.Day, reportUrl string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "空闲教室 %s\n\n", timezone.DisplayDate(date))
	for _, slot := range freeroom.AllSlots {
		total := 0
		var parts []string
		for _, building := range freeroom.BuildingNames() {
			count := len(day.Index.Rooms(slot, building))
			if count == 0 {
				continue
			}
			total += count
			parts = append(parts, fmt.Sprintf("%s %d", building, count))
		}
		fmt.Fprintf(&b, "%s: %d", slot, total)
		if len(parts) > 0 {
			fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
		}
		b.WriteString("\n")
	}

	allDay := 0
	for _, rooms := range day.AllDay {
		allDay += len(rooms)
	}
	fmt.Fprintf(&b, "\n全天空闲: %d\n", allDay)

	if reportUrl != "" {
		fmt.Fprintf(&b, "\n%s\n", reportUrl)
	}
	return b.String()
}

// NotifyUpdate emails today's summary to every recipient.
func (n Notifier) NotifyUpdate(ctx context.Context, date time.Time, today freeroom.Day) error {
	ctx, span := tracer.Start(ctx, "NotifyUpdate")
	defer span.End()
	span.SetAttributes(attribute.Int("recipients", len(n.config.Recipients)))

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("Freeroom <%s>", n.config.Smtp.EmailAddress)
	mail.To = n.config.Recipients
	mail.Subject = fmt.Sprintf("空闲教室已更新 %s", timezone.DisplayDate(date))
	mail.Text = []byte(Summary(date, today, n.config.ReportUrl))

	addr := fmt.Sprintf("%s:%d", n.config.Smtp.Server, n.config.Smtp.Port)
	err := mail.Send(
		addr,
		smtp.PlainAuth("", n.config.Smtp.EmailAddress, n.config.Smtp.Password, n.config.Smtp.Server),
	)
	if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(addr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
