package server

import (
	"time"

	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/desk"
	"lotdesk/pkg/lox"
	"lotdesk/pkg/rest"
)

func newRESTLotsPage(page desk.Page) rest.LotsPage {
	now := time.Now()

	return rest.LotsPage{
		Lots: lox.Map(page.Lots, func(lot entity.Lot) rest.Lot {
			return newRESTLot(lot, page.BusyLots[lot.ID], now)
		}),
		Total:          page.Total,
		StatusMessage:  page.StatusMessage,
		StatusError:    page.StatusError,
		StatusFilter:   page.StatusFilter,
		SupplierFilter: page.SupplierFilter,
		NotifyBusy:     page.NotifyBusy,
	}
}

func newRESTLot(lot entity.Lot, busy bool, now time.Time) rest.Lot {
	return rest.Lot{
		ID:            lot.ID.String(),
		Status:        string(lot.Status.Effective()),
		DisplayStatus: lot.Status.Display(),
		SupplierName:  lot.DisplayName(),
		SupplierID:    lot.SupplierID.String(),
		WhatsappID:    lot.SupplierWhatsappID.String(),
		Region:        lot.Region,
		ReceivedAt:    lot.ReceivedAt.String(),
		Fresh:         lot.IsFresh(now),
		Busy:          busy,
		Positions:     lox.Map([]entity.LotPosition(lot.Positions), newRESTLotPosition),
	}
}

func newRESTLotPosition(position entity.LotPosition) rest.LotPosition {
	return rest.LotPosition{
		Brand:      position.Brand,
		Model:      position.Model,
		Color:      position.Color,
		CapacityGB: position.CapacityGB,
		Quantity:   position.Quantity,
		UnitPrice:  position.UnitPrice,
		Currency:   position.Currency,
		Region:     position.Region,
		Activation: position.Activation.String(),
	}
}

func newRESTToasts(toasts []entity.Toast) rest.Toasts {
	return rest.Toasts{
		Toasts: lox.Map(toasts, newRESTToast),
	}
}

func newRESTToast(toast entity.Toast) rest.Toast {
	return rest.Toast{
		ID:      toast.ID,
		Message: toast.Message,
		Type:    string(toast.Type),
	}
}
