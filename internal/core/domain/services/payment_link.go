package services

import (
	"net/url"
	"strconv"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
)

// PaymentLinkBuilder renders upi://pay deep links that UPI apps open directly.
type PaymentLinkBuilder struct {
	merchantVPA  string
	merchantName string
}

func NewPaymentLinkBuilder(merchantVPA, merchantName string) PaymentLinkBuilder {
	return PaymentLinkBuilder{merchantVPA: merchantVPA, merchantName: merchantName}
}

// Build returns the link for a session. The payment id travels as the transaction
// reference (tr) and the order number as the note (tn). Amounts are in rupees.
func (b PaymentLinkBuilder) Build(paymentID kernel.UUID, orderNumber string, amount float64) string {
	var sb strings.Builder
	sb.WriteString("upi://pay?pa=")
	sb.WriteString(escapeLinkParam(b.merchantVPA))
	sb.WriteString("&pn=")
	sb.WriteString(escapeLinkParam(b.merchantName))
	sb.WriteString("&am=")
	sb.WriteString(strconv.FormatFloat(amount, 'f', 2, 64))
	sb.WriteString("&tr=")
	sb.WriteString(paymentID.String())
	sb.WriteString("&tn=")
	sb.WriteString(escapeLinkParam(orderNumber))
	sb.WriteString("&cu=INR")
	return sb.String()
}

// escapeLinkParam query-escapes a value but keeps '@' readable, as UPI apps expect in addresses.
func escapeLinkParam(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "%40", "@")
}
