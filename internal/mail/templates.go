package mail

import (
	"fmt"

	"github.com/akinfotech/rma-backend/internal/models"
)

// Шаблоны писем. Текст на английском, как и весь клиентский контент.

func confirmationBody(rma *models.RMA) string {
	return fmt.Sprintf(`
		<h2>Return Request Received</h2>
		<p>Dear %s,</p>
		<p>We have received your return request for <strong>%s</strong> (serial number %s).</p>
		<p>Your request ID is <strong>%s</strong>. We will keep you updated as your request moves forward.</p>
		<p>Reported problems: %s</p>
		<p>Thank you for your patience.</p>
	`, rma.ContactName, rma.ProductDetails(), rma.SerialNumber, rma.ID, rma.ProblemsReported)
}

func serviceCentreBody(rma *models.RMA) string {
	return fmt.Sprintf(`
		<h2>Your Device is in the Service Centre</h2>
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> (request %s) has been handed over to our service centre for diagnosis and repair.</p>
		<p>We will notify you once it is ready for pickup.</p>
	`, rma.ContactName, rma.ProductDetails(), rma.ID)
}

func readyBody(rma *models.RMA, otp string) string {
	return fmt.Sprintf(`
		<h2>Your Device is Ready</h2>
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> (request %s) is ready for pickup.</p>
		<p>Please present this one-time code at the counter to collect your device:</p>
		<p style="font-size:24px"><strong>%s</strong></p>
	`, rma.ContactName, rma.ProductDetails(), rma.ID, otp)
}

func deliveredBody(rma *models.RMA) string {
	return fmt.Sprintf(`
		<h2>Your Device has been Delivered</h2>
		<p>Dear %s,</p>
		<p>Your <strong>%s</strong> (request %s) has been handed back to you.</p>
		<p>Thank you for choosing us.</p>
	`, rma.ContactName, rma.ProductDetails(), rma.ID)
}
