package notify

import (
	"fmt"
	"strings"

	"github.com/sunvista/solar-site/internal/config"
	"github.com/sunvista/solar-site/internal/roi"
	"github.com/sunvista/solar-site/internal/types"
	"github.com/sunvista/solar-site/internal/utils/format"
)

// ContactNotification goes to the sales inbox for a contact form.
func ContactNotification(site config.Site, req types.ContactRequest) Message {
	var b strings.Builder
	field(&b, "Name", req.Name)
	field(&b, "Email", req.Email)
	field(&b, "Phone", req.Phone)
	field(&b, "Project type", req.ProjectType)
	b.WriteString("\n")
	b.WriteString(req.Message)
	b.WriteString("\n")

	return Message{
		To:      site.SalesInbox,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("New contact from %s", req.Name),
		Body:    b.String(),
	}
}

// DesignRequestNotification goes to the sales inbox for a design request.
func DesignRequestNotification(site config.Site, req types.DesignRequest) Message {
	var b strings.Builder
	field(&b, "Name", req.Name)
	field(&b, "Email", req.Email)
	field(&b, "Phone", req.Phone)
	field(&b, "Address", req.Address)
	field(&b, "ZIP", req.ZipCode)
	field(&b, "Project type", req.ProjectType)
	field(&b, "Roof type", req.RoofType)
	if req.MonthlyBill > 0 {
		field(&b, "Monthly bill", money(req.MonthlyBill))
	}
	field(&b, "Timeline", req.Timeline)
	if req.Message != "" {
		b.WriteString("\n")
		b.WriteString(req.Message)
		b.WriteString("\n")
	}

	return Message{
		To:      site.SalesInbox,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Design request: %s (%s)", req.Name, req.ZipCode),
		Body:    b.String(),
	}
}

// ROIReport is the savings report mailed to the visitor.
func ROIReport(site config.Site, req types.ROIReportRequest, est roi.Estimate) Message {
	greeting := "Hi"
	if req.Name != "" {
		greeting = "Hi " + req.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s,\n\nHere is your solar savings estimate from %s.\n\n", greeting, site.Name)
	field(&b, "Monthly bill", money(est.MonthlyBill))
	field(&b, "ZIP code", est.ZipCode)
	field(&b, "Recommended system", fmt.Sprintf("%.1f kW", est.SystemSizeKW))
	field(&b, "Estimated cost after tax credit", money(est.NetCost))
	field(&b, "Annual savings", money(est.AnnualSavings))
	field(&b, "Payback period", fmt.Sprintf("%.1f years", est.PaybackYears))
	field(&b, "25-year savings", money(est.LifetimeSavings))
	field(&b, "CO2 avoided per year", fmt.Sprintf("%.2f tons", est.CO2TonsPerYear))
	fmt.Fprintf(&b, "\nReady for a custom design? %s/design-request\n", strings.TrimRight(site.BaseURL, "/"))

	return Message{
		To:      req.Email,
		ReplyTo: site.SalesInbox,
		Subject: "Your solar savings estimate",
		Body:    b.String(),
	}
}

// ROILeadNotification tells sales a calculator visitor asked for a report.
func ROILeadNotification(site config.Site, req types.ROIReportRequest, est roi.Estimate) Message {
	var b strings.Builder
	field(&b, "Name", req.Name)
	field(&b, "Email", req.Email)
	field(&b, "ZIP", est.ZipCode)
	field(&b, "Monthly bill", money(est.MonthlyBill))
	field(&b, "System size", fmt.Sprintf("%.1f kW", est.SystemSizeKW))
	field(&b, "Payback", fmt.Sprintf("%.1f years", est.PaybackYears))

	return Message{
		To:      site.SalesInbox,
		ReplyTo: req.Email,
		Subject: fmt.Sprintf("Calculator lead: %s", req.Email),
		Body:    b.String(),
	}
}

// Welcome is sent to new newsletter subscribers.
func Welcome(site config.Site, req types.SubscribeRequest) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Thanks for subscribing to %s.\n", site.Name)
	if req.LeadMagnet != "" && site.LeadMagnetURL != "" {
		fmt.Fprintf(&b, "\nYour download is ready: %s\n", site.LeadMagnetURL)
	}
	fmt.Fprintf(&b, "\nTo unsubscribe, reply to this email or visit %s/unsubscribe\n", strings.TrimRight(site.BaseURL, "/"))

	return Message{
		To:      req.Email,
		ReplyTo: site.SalesInbox,
		Subject: fmt.Sprintf("Welcome to %s", site.Name),
		Body:    b.String(),
	}
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func money(v float64) string {
	return format.Money(v, 2)
}
