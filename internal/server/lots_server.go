package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"lotdesk/internal/domain"
	"lotdesk/internal/domain/entity"
	"lotdesk/internal/domain/service/desk"
	"lotdesk/pkg/errcodes"
	"lotdesk/pkg/httpx/reply"
	"lotdesk/pkg/httpx/req"
	"lotdesk/pkg/rest"
)

type deskService interface {
	Page() desk.Page
	Toasts() []entity.Toast
	SetFilters(statusFilter, supplierFilter string) error
	ResetFilters()
	Accept(ctx context.Context, id entity.LotID, marginPercent float64) error
	Reject(ctx context.Context, id entity.LotID) error
	NotifySuppliers(ctx context.Context) error
}

type sessionState interface {
	Running() bool
}

type LotsServer struct {
	desk    deskService
	session sessionState
}

func NewLotsServer(deskService deskService, session sessionState) LotsServer {
	return LotsServer{
		desk:    deskService,
		session: session,
	}
}

// requireSession gates the lot view and all actions on a live session.
// Toasts stay reachable regardless, the session-ended toast included.
func (s LotsServer) requireSession() error {
	if !s.session.Running() {
		return domain.NewError(errcodes.SessionInactive, "no active session")
	}

	return nil
}

func (s LotsServer) getV1Lots(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTLotsPage(s.desk.Page()))

	return nil
}

func (s LotsServer) putV1Filters(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	var request rest.FiltersRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.desk.SetFilters(request.Status, request.Supplier); err != nil {
		return fmt.Errorf("desk.SetFilters: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTLotsPage(s.desk.Page()))

	return nil
}

func (s LotsServer) deleteV1Filters(w http.ResponseWriter, r *http.Request) error {
	if err := s.requireSession(); err != nil {
		return err
	}

	s.desk.ResetFilters()

	reply.JSON(r.Context(), w, http.StatusOK, newRESTLotsPage(s.desk.Page()))

	return nil
}

func (s LotsServer) postV1LotAccept(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireSession(); err != nil {
		return err
	}

	id, err := lotIDFromPath(r)
	if err != nil {
		return err
	}

	var request rest.AcceptRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.desk.Accept(ctx, id, *request.MarginPercent); err != nil {
		return fmt.Errorf("desk.Accept: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLotsPage(s.desk.Page()))

	return nil
}

func (s LotsServer) postV1LotReject(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireSession(); err != nil {
		return err
	}

	id, err := lotIDFromPath(r)
	if err != nil {
		return err
	}

	if err := s.desk.Reject(ctx, id); err != nil {
		return fmt.Errorf("desk.Reject: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTLotsPage(s.desk.Page()))

	return nil
}

func (s LotsServer) postV1SuppliersNotify(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.requireSession(); err != nil {
		return err
	}

	if err := s.desk.NotifySuppliers(ctx); err != nil {
		return fmt.Errorf("desk.NotifySuppliers: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s LotsServer) getV1Toasts(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTToasts(s.desk.Toasts()))

	return nil
}

func lotIDFromPath(r *http.Request) (entity.LotID, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	if raw == "" {
		return "", domain.NewError(errcodes.InvalidLotID, "lot id is empty")
	}

	return entity.LotID(raw), nil
}
