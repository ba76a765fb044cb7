package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/smartcondominium/portal/internal/api/metrics"
	"github.com/smartcondominium/portal/internal/core/domain"
	"github.com/smartcondominium/portal/internal/core/guard"
	"github.com/smartcondominium/portal/internal/core/ports"
)

// RegistrationService runs the three step registration wizard. Drafts live
// in the DraftStore between requests; only Submit talks to the API.
type RegistrationService struct {
	api      ports.AuthAPI
	drafts   ports.DraftStore
	audit    ports.AuditSink
	validate *validator.Validate
	log      zerolog.Logger
	now      func() time.Time
}

func NewRegistrationService(api ports.AuthAPI, drafts ports.DraftStore, audit ports.AuditSink, log zerolog.Logger) *RegistrationService {
	return &RegistrationService{
		api:      api,
		drafts:   drafts,
		audit:    audit,
		validate: validator.New(),
		log:      log,
		now:      time.Now,
	}
}

var _ ports.RegistrationService = (*RegistrationService)(nil)

// State returns the wizard as stored, starting a new one when none exists.
func (s *RegistrationService) State(ctx context.Context, draftID string) (*ports.WizardResult, error) {
	draft, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return result(draft), nil
}

// Apply runs one wizard command. Input for the current step is merged into
// the draft before the command executes. Back only merges non-empty input,
// so going back keeps what was typed.
func (s *RegistrationService) Apply(ctx context.Context, draftID string, action ports.WizardAction, fields domain.Registration, meta ports.RequestMeta) (*ports.WizardResult, error) {
	draft, err := s.load(ctx, draftID)
	if err != nil {
		return nil, err
	}
	mergeStep(&draft.Data, fields, draft.Step, action != ports.WizardBack)

	var out *ports.WizardResult
	switch action {
	case ports.WizardNext:
		if draft.Step >= domain.RegistrationSteps {
			metrics.RegistrationStepsTotal.WithLabelValues(string(action), "invalid").Inc()
			return nil, fmt.Errorf("next on step %d: %w", draft.Step, domain.ErrInvalidStep)
		}
		if msg := s.checkStep(draft.Data, draft.Step); msg != "" {
			metrics.RegistrationStepsTotal.WithLabelValues(string(action), "invalid").Inc()
			out = result(draft)
			out.Error = msg
			break
		}
		draft.Step++
		metrics.RegistrationStepsTotal.WithLabelValues(string(action), "ok").Inc()
		out = result(draft)

	case ports.WizardBack:
		if draft.Step > 1 {
			draft.Step--
		}
		metrics.RegistrationStepsTotal.WithLabelValues(string(action), "ok").Inc()
		out = result(draft)

	case ports.WizardSubmit:
		if draft.Step != domain.RegistrationSteps {
			metrics.RegistrationStepsTotal.WithLabelValues(string(action), "invalid").Inc()
			return nil, fmt.Errorf("submit on step %d: %w", draft.Step, domain.ErrInvalidStep)
		}
		return s.submit(ctx, draftID, draft, meta)

	default:
		return nil, fmt.Errorf("unknown wizard action %q: %w", action, domain.ErrValidation)
	}

	if err := s.drafts.SaveDraft(ctx, draftID, draft); err != nil {
		return nil, fmt.Errorf("save draft: %w", err)
	}
	return out, nil
}

func (s *RegistrationService) submit(ctx context.Context, draftID string, draft *domain.RegistrationDraft, meta ports.RequestMeta) (*ports.WizardResult, error) {
	// Every step is checked again; a stale draft may skip client checks.
	for step := 1; step <= domain.RegistrationSteps; step++ {
		if msg := s.checkStep(draft.Data, step); msg != "" {
			metrics.RegistrationStepsTotal.WithLabelValues(string(ports.WizardSubmit), "invalid").Inc()
			out := result(draft)
			out.Error = msg
			return out, nil
		}
	}

	if err := s.api.Register(ctx, draft.Data); err != nil {
		label := "error"
		var re *domain.RemoteError
		if errors.As(err, &re) {
			label = "rejected"
		}
		metrics.RegistrationStepsTotal.WithLabelValues(string(ports.WizardSubmit), label).Inc()
		s.record(domain.AuditRegisterFailed, draft.Data.Correo, err.Error(), meta)
		s.log.Info().Err(err).Str("email", draft.Data.Correo).Msg("registration rejected")

		if saveErr := s.drafts.SaveDraft(ctx, draftID, draft); saveErr != nil {
			s.log.Warn().Err(saveErr).Msg("failed to keep registration draft")
		}
		out := result(draft)
		out.Error = domain.UserMessage(err, domain.MsgRegisterFailed)
		return out, nil
	}

	metrics.RegistrationStepsTotal.WithLabelValues(string(ports.WizardSubmit), "ok").Inc()
	s.record(domain.AuditRegister, draft.Data.Correo, "", meta)
	if err := s.drafts.DeleteDraft(ctx, draftID); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete registration draft")
	}
	out := result(draft)
	out.Completed = true
	out.Redirect = guard.PathLogin
	return out, nil
}

func (s *RegistrationService) load(ctx context.Context, draftID string) (*domain.RegistrationDraft, error) {
	if draftID == "" {
		return nil, fmt.Errorf("empty draft id: %w", domain.ErrValidation)
	}
	draft, err := s.drafts.LoadDraft(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if draft == nil || draft.Step < 1 || draft.Step > domain.RegistrationSteps {
		draft = domain.NewRegistrationDraft()
	}
	return draft, nil
}

// checkStep validates only the fields collected on step and returns the
// first message, or "".
func (s *RegistrationService) checkStep(data domain.Registration, step int) string {
	err := s.validate.StructPartial(data, domain.StepFields[step]...)
	if err == nil {
		return ""
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, stepFieldMessage(fe))
	}
	return strings.Join(msgs, " ")
}

func (s *RegistrationService) record(kind domain.AuditKind, subject, reason string, meta ports.RequestMeta) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Kind:      kind,
		Subject:   subject,
		Reason:    reason,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		At:        s.now().UTC(),
	})
}

var fieldLabels = map[string]string{
	"Nombre":     "nombre",
	"Apellido":   "apellido",
	"Correo":     "correo electrónico",
	"Contrasena": "contraseña",
	"Sexo":       "sexo",
	"Telefono":   "teléfono",
}

func stepFieldMessage(fe validator.FieldError) string {
	label := fieldLabels[fe.StructField()]
	if label == "" {
		label = strings.ToLower(fe.Field())
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("El campo %s es obligatorio.", label)
	case "email":
		return "Ingrese un correo electrónico válido."
	case "min":
		return fmt.Sprintf("La %s debe tener al menos %s caracteres.", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("El campo %s debe ser uno de: %s.", label, fe.Param())
	default:
		return fmt.Sprintf("El campo %s no es válido.", label)
	}
}

// mergeStep copies the fields of step from in into dst. Without overwrite
// only non-empty values are copied.
func mergeStep(dst *domain.Registration, in domain.Registration, step int, overwrite bool) {
	set := func(field *string, v string) {
		if overwrite || v != "" {
			*field = v
		}
	}
	switch step {
	case 1:
		set(&dst.Nombre, strings.TrimSpace(in.Nombre))
		set(&dst.Apellido, strings.TrimSpace(in.Apellido))
	case 2:
		set(&dst.Correo, strings.TrimSpace(in.Correo))
		set(&dst.Contrasena, in.Contrasena)
	case 3:
		set(&dst.Telefono, strings.TrimSpace(in.Telefono))
		set(&dst.Sexo, strings.ToUpper(strings.TrimSpace(in.Sexo)))
	}
}

// result never echoes the password back.
func result(d *domain.RegistrationDraft) *ports.WizardResult {
	data := d.Data
	data.Contrasena = ""
	return &ports.WizardResult{
		Step:  d.Step,
		Steps: domain.RegistrationSteps,
		Data:  data,
	}
}
