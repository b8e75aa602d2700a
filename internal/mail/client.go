package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/akinfotech/rma-backend/internal/models"
)

// Client отправляет транзакционные письма через Brevo API.
// Отправка best-effort: без очередей и повторов, ошибка доставки
// поднимается наверх и решается вызывающей стороной.
type Client struct {
	baseURL     string
	apiKey      string
	senderEmail string
	senderName  string
	httpClient  *http.Client
}

// NewClient создаёт экземпляр клиента.
func NewClient(baseURL, apiKey, senderEmail, senderName string) *Client {
	return &Client{
		baseURL:     baseURL,
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// send выполняет POST {baseURL}/smtp/email с ключом в заголовке api-key.
func (c *Client) send(ctx context.Context, toEmail, toName, subject, html string) error {
	if c.baseURL == "" {
		return fmt.Errorf("mail: baseURL не задан")
	}

	payload := sendRequest{
		Sender:      party{Email: c.senderEmail, Name: c.senderName},
		To:          []party{{Email: toEmail, Name: toName}},
		Subject:     subject,
		HTMLContent: html,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mail: не удалось сериализовать запрос: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/smtp/email", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: не удалось создать запрос: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: запрос к Brevo не удался: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mail: Brevo вернул статус %d: %s", resp.StatusCode, string(raw))
	}

	return nil
}

// SendConfirmation отправляет подтверждение приёма заявки.
func (c *Client) SendConfirmation(ctx context.Context, rma *models.RMA) error {
	subject := fmt.Sprintf("[RMA] Your Return Request %s has been received", rma.ID)
	return c.send(ctx, rma.ContactEmail, rma.ContactName, subject, confirmationBody(rma))
}

// SendServiceCentre отправляет уведомление о передаче в сервисный центр.
func (c *Client) SendServiceCentre(ctx context.Context, rma *models.RMA) error {
	subject := fmt.Sprintf("[RMA] Your Return %s is in Service Centre", rma.ID)
	return c.send(ctx, rma.ContactEmail, rma.ContactName, subject, serviceCentreBody(rma))
}

// SendReady отправляет уведомление о готовности с кодом выдачи.
func (c *Client) SendReady(ctx context.Context, rma *models.RMA, otp string) error {
	subject := fmt.Sprintf("[RMA] Your Return %s is Ready", rma.ID)
	return c.send(ctx, rma.ContactEmail, rma.ContactName, subject, readyBody(rma, otp))
}

// SendDelivered отправляет подтверждение выдачи устройства.
func (c *Client) SendDelivered(ctx context.Context, rma *models.RMA) error {
	subject := fmt.Sprintf("[RMA] Your Return %s has been Delivered", rma.ID)
	return c.send(ctx, rma.ContactEmail, rma.ContactName, subject, deliveredBody(rma))
}
