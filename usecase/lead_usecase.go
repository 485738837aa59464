package usecase

import (
	"context"
	"errors"

	"creedava-api/domain/dto"
	"creedava-api/domain/model"
	"creedava-api/domain/repository"
	"creedava-api/infrastructure/googlesheet"
	"creedava-api/infrastructure/logger"
	"creedava-api/infrastructure/pubsub"
	"creedava-api/infrastructure/servicebus"
)

// ErrLeadNotFound is returned for operations on an id with no stored lead.
var ErrLeadNotFound = errors.New("lead not found")

// ErrInvalidLeadStatus is returned when an update carries an unknown status.
var ErrInvalidLeadStatus = errors.New("invalid lead status")

type ILeadUsecase interface {
	// Capture stores a contact-form submission and fans out notifications
	// best-effort; notification failures never fail the capture.
	Capture(ctx context.Context, req dto.LeadRequest) (*model.Lead, error)
	GetByID(ctx context.Context, id int64) (*model.Lead, error)
	List(ctx context.Context, req dto.LeadListRequest) ([]model.Lead, int64, error)
	Update(ctx context.Context, id int64, req dto.LeadUpdateRequest) (*model.Lead, error)
	Delete(ctx context.Context, id int64) error
	// Export appends all leads to the configured sheet and returns the row count.
	Export(ctx context.Context) (int, error)
}

type LeadUsecase struct {
	leads     repository.ILead
	analytics pubsub.IAnalyticsPublisher
	alerts    servicebus.INotificationBus
	sheet     googlesheet.ILeadSheet
}

func NewLeadUsecase(leads repository.ILead, analytics pubsub.IAnalyticsPublisher, alerts servicebus.INotificationBus, sheet googlesheet.ILeadSheet) ILeadUsecase {
	return &LeadUsecase{leads: leads, analytics: analytics, alerts: alerts, sheet: sheet}
}

func (u *LeadUsecase) Capture(ctx context.Context, req dto.LeadRequest) (*model.Lead, error) {
	lead := &model.Lead{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Message: req.Message,
		Source:  req.Source,
		Status:  model.LeadStatusNew,
	}
	if lead.Source == "" {
		lead.Source = "contact-form"
	}
	if err := u.leads.Create(ctx, lead); err != nil {
		return nil, err
	}

	if u.alerts != nil {
		if err := u.alerts.SendLeadAlert(ctx, lead); err != nil {
			logger.GetLogger().WithField("error", err).Warn("lead alert failed")
		}
	}
	if u.analytics != nil {
		event := pubsub.AnalyticsEvent{Kind: "lead_captured", LeadID: lead.ID}
		if err := u.analytics.Publish(ctx, event); err != nil {
			logger.GetLogger().WithField("error", err).Warn("analytics publish failed")
		}
	}
	return lead, nil
}

func (u *LeadUsecase) GetByID(ctx context.Context, id int64) (*model.Lead, error) {
	lead, err := u.leads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, ErrLeadNotFound
	}
	return lead, nil
}

func (u *LeadUsecase) List(ctx context.Context, req dto.LeadListRequest) ([]model.Lead, int64, error) {
	if req.Status != "" && !model.ValidLeadStatus(req.Status) {
		return nil, 0, ErrInvalidLeadStatus
	}
	pageSize := req.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 25
	}
	page := req.Page
	if page < 1 {
		page = 1
	}
	return u.leads.List(ctx, req.Status, pageSize, (page-1)*pageSize)
}

func (u *LeadUsecase) Update(ctx context.Context, id int64, req dto.LeadUpdateRequest) (*model.Lead, error) {
	lead, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		if !model.ValidLeadStatus(*req.Status) {
			return nil, ErrInvalidLeadStatus
		}
		lead.Status = *req.Status
	}
	if req.Phone != nil {
		lead.Phone = *req.Phone
	}
	if req.Company != nil {
		lead.Company = *req.Company
	}
	if err := u.leads.Update(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (u *LeadUsecase) Delete(ctx context.Context, id int64) error {
	if _, err := u.GetByID(ctx, id); err != nil {
		return err
	}
	return u.leads.Delete(ctx, id)
}

func (u *LeadUsecase) Export(ctx context.Context) (int, error) {
	const batch = 500
	exported := 0
	for offset := 0; ; offset += batch {
		leads, _, err := u.leads.List(ctx, "", batch, offset)
		if err != nil {
			return exported, err
		}
		if len(leads) == 0 {
			break
		}
		n, err := u.sheet.AppendLeads(ctx, leads)
		exported += n
		if err != nil {
			return exported, err
		}
		if len(leads) < batch {
			break
		}
	}
	return exported, nil
}
