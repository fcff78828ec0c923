package statusclient

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"statuspage/pkg/status"

	"github.com/go-playground/validator/v10"
)

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

var ErrNotEditing = errors.New("form is not editing an existing record")

// ValidationErrors maps a json field name to its message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+v[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func validateStruct(s any) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"form": err.Error()}
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "oneof":
		return oneOfMessage(fe.Param())
	case "uuid":
		return "must be a valid id"
	}
	return "is invalid"
}

func oneOfMessage(spaced string) string {
	return "must be one of: " + strings.ReplaceAll(spaced, " ", ", ")
}

type FormMode string

const (
	Creating FormMode = "create"
	Editing  FormMode = "edit"
)

type actionKind int

const (
	actionSet actionKind = iota
	actionLoadService
	actionLoadIncident
	actionReset
)

// FormAction is the only way to change a form.
type FormAction struct {
	kind     actionKind
	field    string
	value    string
	service  Service
	incident Incident
}

func SetField(field, value string) FormAction {
	return FormAction{kind: actionSet, field: field, value: value}
}

func LoadService(s Service) FormAction { return FormAction{kind: actionLoadService, service: s} }

func LoadIncident(i Incident) FormAction { return FormAction{kind: actionLoadIncident, incident: i} }

func ResetForm() FormAction { return FormAction{kind: actionReset} }

// ServiceForm backs both the create and the edit dialog.
type ServiceForm struct {
	Mode        FormMode
	ID          string
	Name        string
	Description string
	Status      string
	Errors      ValidationErrors

	original Service
}

func NewServiceForm() ServiceForm {
	return ServiceForm{Mode: Creating, Status: string(status.Operational)}
}

// Reduce returns the next state; f is left untouched.
func (f ServiceForm) Reduce(a FormAction) ServiceForm {
	switch a.kind {
	case actionReset:
		return NewServiceForm()

	case actionLoadService:
		return ServiceForm{
			Mode:        Editing,
			ID:          a.service.ID,
			Name:        a.service.Name,
			Description: a.service.Description,
			Status:      string(a.service.Status),
			original:    a.service,
		}

	case actionSet:
		switch a.field {
		case "name":
			f.Name = a.value
		case "description":
			f.Description = a.value
		case "status":
			f.Status = a.value
		default:
			return f
		}
		f.Errors = f.Errors.without(a.field)
	}
	return f
}

func (f ServiceForm) request() CreateServiceRequest {
	return CreateServiceRequest{
		Name:        strings.TrimSpace(f.Name),
		Description: strings.TrimSpace(f.Description),
		Status:      f.Status,
	}
}

// Validate fills Errors and reports whether the form can be submitted.
func (f ServiceForm) Validate() (ServiceForm, bool) {
	f.Errors = validateStruct(f.request())
	return f, len(f.Errors) == 0
}

func (f ServiceForm) CreateRequest() (CreateServiceRequest, error) {
	req := f.request()
	if errs := validateStruct(req); errs != nil {
		return CreateServiceRequest{}, errs
	}
	return req, nil
}

// UpdateRequest carries only the fields changed since LoadService.
func (f ServiceForm) UpdateRequest() (string, UpdateServiceRequest, error) {
	if f.Mode != Editing {
		return "", UpdateServiceRequest{}, ErrNotEditing
	}
	req := f.request()
	if errs := validateStruct(req); errs != nil {
		return "", UpdateServiceRequest{}, errs
	}

	var upd UpdateServiceRequest
	if req.Name != f.original.Name {
		upd.Name = &req.Name
	}
	if req.Description != f.original.Description {
		upd.Description = &req.Description
	}
	if req.Status != string(f.original.Status) {
		upd.Status = &req.Status
	}
	return f.ID, upd, nil
}

// IncidentForm backs the create, edit and status dialogs.
type IncidentForm struct {
	Mode          FormMode
	ID            string
	ServiceID     string
	Title         string
	Description   string
	Impact        string
	Status        string
	UpdateMessage string
	Errors        ValidationErrors

	original Incident
}

func NewIncidentForm() IncidentForm {
	return IncidentForm{Mode: Creating, Impact: string(status.ImpactMedium)}
}

func (f IncidentForm) Reduce(a FormAction) IncidentForm {
	switch a.kind {
	case actionReset:
		return NewIncidentForm()

	case actionLoadIncident:
		return IncidentForm{
			Mode:        Editing,
			ID:          a.incident.ID,
			ServiceID:   a.incident.ServiceID,
			Title:       a.incident.Title,
			Description: a.incident.Description,
			Impact:      string(a.incident.Impact),
			Status:      string(a.incident.Status),
			original:    a.incident,
		}

	case actionSet:
		switch a.field {
		case "service_id":
			// the service is fixed once the incident exists
			if f.Mode == Editing {
				return f
			}
			f.ServiceID = a.value
		case "title":
			f.Title = a.value
		case "description":
			f.Description = a.value
		case "impact":
			f.Impact = a.value
		case "status":
			f.Status = a.value
		case "update_message":
			f.UpdateMessage = a.value
		default:
			return f
		}
		f.Errors = f.Errors.without(a.field)
	}
	return f
}

func (f IncidentForm) request() CreateIncidentRequest {
	return CreateIncidentRequest{
		ServiceID:   strings.TrimSpace(f.ServiceID),
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Impact:      f.Impact,
	}
}

func (f IncidentForm) Validate() (IncidentForm, bool) {
	errs := validateStruct(f.request())
	if f.Mode == Editing {
		if _, err := status.ParseIncidentStatus(f.Status); err != nil {
			if errs == nil {
				errs = ValidationErrors{}
			}
			errs["status"] = oneOfMessage(status.OneOf(status.IncidentStatuses))
		}
	}
	f.Errors = errs
	return f, len(f.Errors) == 0
}

func (f IncidentForm) CreateRequest() (CreateIncidentRequest, error) {
	req := f.request()
	if errs := validateStruct(req); errs != nil {
		return CreateIncidentRequest{}, errs
	}
	return req, nil
}

// UpdateRequest carries only the fields changed since LoadIncident.
func (f IncidentForm) UpdateRequest() (string, UpdateIncidentRequest, error) {
	if f.Mode != Editing {
		return "", UpdateIncidentRequest{}, ErrNotEditing
	}
	if checked, ok := f.Validate(); !ok {
		return "", UpdateIncidentRequest{}, checked.Errors
	}

	req := f.request()
	upd := UpdateIncidentRequest{}
	if req.Title != f.original.Title {
		upd.Title = &req.Title
	}
	if req.Description != f.original.Description {
		upd.Description = &req.Description
	}
	if req.Impact != string(f.original.Impact) {
		upd.Impact = &req.Impact
	}
	if f.Status != string(f.original.Status) {
		st := f.Status
		upd.Status = &st
	}
	return f.ID, upd, nil
}

// StatusRequest is the status dialog: new status plus an optional note.
func (f IncidentForm) StatusRequest() (id, newStatus, note string, err error) {
	if f.Mode != Editing {
		return "", "", "", ErrNotEditing
	}
	st, err := status.ParseIncidentStatus(f.Status)
	if err != nil {
		return "", "", "", ValidationErrors{"status": oneOfMessage(status.OneOf(status.IncidentStatuses))}
	}
	return f.ID, string(st), strings.TrimSpace(f.UpdateMessage), nil
}

func (v ValidationErrors) without(field string) ValidationErrors {
	if _, ok := v[field]; !ok {
		return v
	}
	out := make(ValidationErrors, len(v)-1)
	for k, msg := range v {
		if k != field {
			out[k] = msg
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
