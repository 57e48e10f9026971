package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/salonflow/booking-api/internal/models"
)

// MercadoPago opens a checkout preference for prepaid bookings. The
// preference ID is stored on the booking as the payment reference and the
// init point URL is handed back to the client.
type MercadoPago struct {
	client preference.Client
}

// NewMercadoPago returns nil when no access token is configured; callers
// treat a nil provider as "prepaid checkout disabled".
func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

func (p *MercadoPago) CreatePreference(
	ctx context.Context,
	b *models.Booking,
	svc *models.Service,
	biz *models.Business,
) (string, string, error) {

	req := preference.Request{
		ExternalReference: b.Reference,
		Items: []preference.ItemRequest{
			{
				ID:          fmt.Sprintf("service-%d", svc.ID),
				Title:       fmt.Sprintf("%s at %s", svc.Name, biz.Name),
				Description: fmt.Sprintf("%s on %s at %s", svc.Name, b.BookingDate.Format("2006-01-02"), b.BookingTime),
				Quantity:    1,
				UnitPrice:   svc.Price,
				CurrencyID:  biz.Currency,
			},
		},
	}

	resp, err := p.client.Create(ctx, req)
	if err != nil {
		return "", "", fmt.Errorf("create preference: %w", err)
	}

	return resp.ID, resp.InitPoint, nil
}
