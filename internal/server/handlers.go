package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tartampluch/go-folio/internal/calculator"
	"github.com/tartampluch/go-folio/internal/calendar"
	"github.com/tartampluch/go-folio/internal/config"
	"github.com/tartampluch/go-folio/internal/contact"
	"github.com/tartampluch/go-folio/internal/engine"
	"github.com/tartampluch/go-folio/internal/units"
	"github.com/tartampluch/go-folio/internal/validation"
	"github.com/tartampluch/go-folio/internal/weather"
)

// notReady is the answer for incomplete calculator input. It is not an error.
type notReady struct {
	Ready bool `json:"ready"`
}

func (s *Server) answerNotReady(w http.ResponseWriter, calc string) {
	s.metrics.RecordCalculation(calc, config.OutcomeNotReady)
	writeJSON(w, http.StatusOK, notReady{})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": config.Version,
	})
}

func (s *Server) handleVCard(w http.ResponseWriter, r *http.Request) {
	doc := s.owner.Load()
	if doc == nil {
		s.fail(w, r, http.StatusNotFound, config.ErrTypeNotFound, errorBody{Error: config.ErrOwnerMissing})
		return
	}
	serveDocument(w, r, doc)
}

// -----------------------------------------------------------------------------
// Unit converter
// -----------------------------------------------------------------------------

type unitView struct {
	units.Unit
	Label string `json:"label"`
}

type tableView struct {
	Category units.Category `json:"category"`
	Label    string         `json:"label"`
	Base     string         `json:"base"`
	Units    []unitView     `json:"units"`
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	tr := s.translator(r)
	tables := units.Tables()
	out := make([]tableView, 0, len(tables))
	for _, t := range tables {
		tv := tableView{Category: t.Category, Label: tr.Category(t.Category), Base: t.Base}
		for _, u := range t.Units {
			tv.Units = append(tv.Units, unitView{Unit: u, Label: tr.Unit(u.Key)})
		}
		out = append(out, tv)
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": out})
}

type convertResponse struct {
	Ready     bool           `json:"ready"`
	Category  units.Category `json:"category"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Value     float64        `json:"value"`
	Formatted string         `json:"formatted"`
	Localized string         `json:"localized"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, ok := units.ParseCategory(q.Get(config.QueryCategory))
	if !ok {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrUnknownCategory})
		return
	}
	table, _ := units.Lookup(category)

	from, to := q.Get(config.QueryFrom), q.Get(config.QueryTo)
	for _, key := range []string{from, to} {
		if key != "" && !table.Has(key) {
			s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrUnknownUnit, Detail: key})
			return
		}
	}

	v, ok := units.ConvertText(category, from, to, q.Get(config.QueryValue))
	if !ok {
		s.answerNotReady(w, config.CalcConverter)
		return
	}

	s.metrics.RecordCalculation(config.CalcConverter, config.OutcomeOK)
	writeJSON(w, http.StatusOK, convertResponse{
		Ready:     true,
		Category:  category,
		From:      from,
		To:        to,
		Value:     v,
		Formatted: units.FormatValue(v, config.ResultDecimals),
		Localized: s.translator(r).Number(v, config.ResultDecimals),
	})
}

// -----------------------------------------------------------------------------
// Age & date difference
// -----------------------------------------------------------------------------

type ageResponse struct {
	Ready bool `json:"ready"`
	engine.Age
	BirthDayName string `json:"birthDay"`
	ZodiacName   string `json:"zodiacName"`
	Summary      string `json:"summary"`
	Next         string `json:"next"`
}

func (s *Server) handleAge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := q.Get(config.QueryNow)
	if now == "" {
		now = s.clock.Now().Format(time.RFC3339)
	}

	age, ok := engine.ComputeAgeISO(q.Get(config.QueryBirth), now)
	if !ok {
		s.answerNotReady(w, config.CalcAge)
		return
	}

	tr := s.translator(r)
	s.metrics.RecordCalculation(config.CalcAge, config.OutcomeOK)
	writeJSON(w, http.StatusOK, ageResponse{
		Ready:        true,
		Age:          age,
		BirthDayName: tr.Weekday(age.BirthDay),
		ZodiacName:   tr.Zodiac(age.Zodiac),
		Summary: tr.Format(config.TKeyAgeSummary, map[string]any{
			"Years": age.Years, "Months": age.Months, "Days": age.Days,
		}),
		Next: tr.Plural(config.TKeyAgeNext, age.DaysUntilNextBirthday, map[string]any{"Age": age.AgeNext}),
	})
}

type differenceResponse struct {
	Ready bool `json:"ready"`
	engine.Difference
	Description string `json:"description"`
	StartLong   string `json:"startLong"`
	EndLong     string `json:"endLong"`
}

func (s *Server) handleDifference(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	d, ok := engine.ComputeDifferenceISO(q.Get(config.QueryStart), q.Get(config.QueryEnd))
	if !ok {
		s.answerNotReady(w, config.CalcDifference)
		return
	}

	tr := s.translator(r)
	s.metrics.RecordCalculation(config.CalcDifference, config.OutcomeOK)
	writeJSON(w, http.StatusOK, differenceResponse{
		Ready:       true,
		Difference:  d,
		Description: tr.Describe(d),
		StartLong:   tr.LongDate(d.Start),
		EndLong:     tr.LongDate(d.End),
	})
}

// reminder reads the alarm trigger. A present but empty parameter disables the alarm.
func reminder(r *http.Request) (string, bool) {
	values, present := r.URL.Query()[config.QueryReminder]
	if !present {
		return config.DefaultReminderValue, true
	}
	v, err := calendar.ParseReminder(values[0])
	if err != nil {
		return "", false
	}
	return v, true
}

func (s *Server) handleAgeCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	now := s.clock.Now()
	birth, err := engine.ParseDate(q.Get(config.QueryBirth), now.Location())
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrDateParse, Detail: config.QueryBirth})
		return
	}
	alarm, ok := reminder(r)
	if !ok {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrReminderFormat})
		return
	}

	name := strings.TrimSpace(q.Get(config.QueryName))
	if name == "" {
		name = s.settings.Owner.Name
	}
	if name == "" {
		name = config.AppName
	}

	// Stamping with today's date keeps the document, and its ETag, stable for a day.
	today := engine.Today(s.clock)
	data, err := calendar.BirthdayCalendar(name, birth, now, calendar.Options{Reminder: alarm, Stamp: today})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, config.ErrTypeInternal, errorBody{Error: config.ErrICalEncode})
		return
	}
	serveDocument(w, r, newDocument(data, config.MimeTextCalendar, today))
}

func (s *Server) handleDifferenceCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, errStart := engine.ParseDate(q.Get(config.QueryStart), time.UTC)
	end, errEnd := engine.ParseDate(q.Get(config.QueryEnd), time.UTC)
	if err := errors.Join(errStart, errEnd); err != nil {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrDateParse, Detail: err.Error()})
		return
	}
	alarm, ok := reminder(r)
	if !ok {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrReminderFormat})
		return
	}

	d := engine.ComputeDifference(start, end)
	today := engine.Today(s.clock)
	data, err := calendar.RangeCalendar(q.Get(config.QuerySummary), s.translator(r).Describe(d), d,
		calendar.Options{Reminder: alarm, Stamp: today})
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, config.ErrTypeInternal, errorBody{Error: config.ErrICalEncode})
		return
	}
	serveDocument(w, r, newDocument(data, config.MimeTextCalendar, today))
}

// -----------------------------------------------------------------------------
// Calculators
// -----------------------------------------------------------------------------

type calculatorRequest struct {
	Keys  []string          `json:"keys" validate:"required,min=1,max=256,dive,required,max=16"`
	State *calculator.State `json:"state,omitempty"`
}

type calculatorResponse struct {
	State calculator.State `json:"state"`
	Error bool             `json:"error"`
}

func (s *Server) handleCalculator(w http.ResponseWriter, r *http.Request) {
	var req calculatorRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	keys := make([]calculator.Key, 0, len(req.Keys))
	for _, raw := range req.Keys {
		k, ok := calculator.ParseKey(raw)
		if !ok {
			s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrUnknownKey, Detail: raw})
			return
		}
		keys = append(keys, k)
	}

	state := calculator.New()
	if req.State != nil {
		state = req.State.Normalize()
	}
	state = calculator.PressAll(state, keys...)

	outcome := config.OutcomeOK
	if state.IsError() {
		outcome = config.OutcomeError
	}
	s.metrics.RecordCalculation(config.CalcKeypad, outcome)
	writeJSON(w, http.StatusOK, calculatorResponse{State: state, Error: state.IsError()})
}

type evaluateRequest struct {
	Expression string `json:"expression" validate:"required,max=512"`
	AngleMode  string `json:"angleMode,omitempty" validate:"omitempty,oneof=DEG RAD deg rad"`
}

type evaluateResponse struct {
	Value     float64 `json:"value"`
	Display   string  `json:"display"`
	Localized string  `json:"localized"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	v, err := calculator.Evaluate(req.Expression, calculator.ParseAngleMode(req.AngleMode))
	if err != nil {
		s.metrics.RecordCalculation(config.CalcExpression, config.OutcomeError)
		s.fail(w, r, http.StatusUnprocessableEntity, config.ErrTypeValidation, errorBody{
			Error:  s.translator(r).Msg(config.TKeyErrExpression),
			Detail: err.Error(),
		})
		return
	}

	s.metrics.RecordCalculation(config.CalcExpression, config.OutcomeOK)
	writeJSON(w, http.StatusOK, evaluateResponse{
		Value:     v,
		Display:   calculator.FormatNumber(v),
		Localized: s.translator(r).Number(v, config.EvaluateDecimals),
	})
}

// decodeValid decodes and validates a JSON body, answering 400 on failure.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeBadRequest, errorBody{Error: config.ErrInvalidRequest, Detail: err.Error()})
		return false
	}
	if err := validation.Struct(v); err != nil {
		body := errorBody{Error: config.ErrValidation}
		var verr *validation.Error
		if errors.As(err, &verr) {
			body.Fields = verr.Fields
		}
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, body)
		return false
	}
	return true
}

// -----------------------------------------------------------------------------
// Collaborators
// -----------------------------------------------------------------------------

type weatherResponse struct {
	weather.Report
	Conditions string `json:"conditions"`
	Summary    string `json:"summary"`
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.weather == nil {
		s.fail(w, r, http.StatusServiceUnavailable, config.ErrTypeUnavailable, errorBody{Error: config.ErrNoWeather})
		return
	}

	tr := s.translator(r)
	report, err := s.weather.Lookup(r.Context(), r.URL.Query().Get(config.QueryCity))
	switch {
	case errors.Is(err, weather.ErrCityRequired):
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrCityRequired})
		return
	case errors.Is(err, weather.ErrCityNotFound):
		s.fail(w, r, http.StatusNotFound, config.ErrTypeNotFound, errorBody{Error: tr.Msg(config.TKeyErrCityNotFound)})
		return
	case err != nil:
		s.fail(w, r, http.StatusServiceUnavailable, config.ErrTypeUpstream, errorBody{Error: tr.Msg(config.TKeyErrWeather)})
		return
	}

	conditions := tr.Conditions(report.Current.Code)
	writeJSON(w, http.StatusOK, weatherResponse{
		Report:     report,
		Conditions: conditions,
		Summary:    tr.WeatherLines(report)[0],
	})
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var sub contact.Submission
	if err := decodeJSON(w, r, &sub); err != nil {
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeBadRequest, errorBody{Error: config.ErrInvalidRequest, Detail: err.Error()})
		return
	}
	if s.mailer == nil {
		s.fail(w, r, http.StatusServiceUnavailable, config.ErrTypeUnavailable, errorBody{Error: config.ErrRelayNotConfig})
		return
	}

	err := s.mailer.Send(r.Context(), sub)
	var verr *validation.Error
	switch {
	case err == nil:
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "sent"})
	case errors.As(err, &verr):
		s.fail(w, r, http.StatusBadRequest, config.ErrTypeValidation, errorBody{Error: config.ErrValidation, Fields: verr.Fields})
	case errors.Is(err, contact.ErrNotConfigured):
		s.fail(w, r, http.StatusServiceUnavailable, config.ErrTypeUnavailable, errorBody{Error: config.ErrRelayNotConfig})
	default:
		s.fail(w, r, http.StatusBadGateway, config.ErrTypeUpstream, errorBody{Error: config.ErrRelayFailed})
	}
}
