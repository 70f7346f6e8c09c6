package handlers

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xeipuuv/gojsonschema"

	"github.com/purabshah12/beacon/internal/common/errors"
	"github.com/purabshah12/beacon/internal/common/logger"
	"github.com/purabshah12/beacon/internal/report"
)

// createItemSchema validates POST /items bodies. Extra keys are tolerated
// and ignored, matching the update contract.
var createItemSchema = gojsonschema.NewGoLoader(map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"title":          map[string]interface{}{"type": "string", "minLength": 1},
		"description":    map[string]interface{}{"type": "string", "minLength": 1},
		"category":       map[string]interface{}{"type": "string", "minLength": 1},
		"location":       map[string]interface{}{"type": "string", "minLength": 1},
		"status":         map[string]interface{}{"type": "string", "minLength": 1},
		"contact_info":   map[string]interface{}{"type": "string", "minLength": 1},
		"image_filename": map[string]interface{}{"type": []string{"string", "null"}},
	},
	"required": []string{"title", "description", "category", "location", "status", "contact_info"},
})

// ItemsHandler exposes lost-item report CRUD.
type ItemsHandler struct {
	Store  *report.Store
	Logger logger.Logger
}

func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.Store.List(r.URL.Query().Get("status"))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.fail(w, errors.NewInvalidRequestError("malformed JSON body"))
		return
	}

	if err := validateCreateBody(body); err != nil {
		h.fail(w, err)
		return
	}

	created, err := h.Store.Create(fieldsFromBody(body))
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	record, err := h.Store.Get(id)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.fail(w, errors.NewInvalidRequestError("malformed JSON body"))
		return
	}

	record, err := h.Store.Update(id, fields)
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.itemID(w, r)
	if !ok {
		return
	}

	if err := h.Store.Delete(id); err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

func (h *ItemsHandler) itemID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, errors.NewInvalidRequestError("invalid item id"))
		return 0, false
	}
	return id, true
}

func (h *ItemsHandler) fail(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)

	if errors.CodeOf(err) == errors.ErrCodeItemNotFound {
		writeJSON(w, status, map[string]string{"detail": "Item not found"})
		return
	}

	message := "Internal server error"
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		message = stdErr.Message
		if stdErr.Details != "" {
			message = stdErr.Message + ": " + stdErr.Details
		}
	}

	h.Logger.Warn("item request failed", map[string]interface{}{
		"errorCode": string(errors.CodeOf(err)),
		"error":     err.Error(),
	})
	writeJSON(w, status, map[string]string{"error": message})
}

func validateCreateBody(body map[string]interface{}) error {
	result, err := gojsonschema.Validate(createItemSchema, gojsonschema.NewGoLoader(body))
	if err != nil {
		return errors.NewInvalidRequestError(err.Error())
	}
	if !result.Valid() {
		details := ""
		for i, desc := range result.Errors() {
			if i > 0 {
				details += "; "
			}
			details += desc.String()
		}
		return errors.NewInvalidRequestError(details)
	}
	return nil
}

func fieldsFromBody(body map[string]interface{}) report.CreateFields {
	str := func(key string) string {
		v, _ := body[key].(string)
		return v
	}

	fields := report.CreateFields{
		Title:       str("title"),
		Description: str("description"),
		Category:    str("category"),
		Location:    str("location"),
		Status:      str("status"),
		ContactInfo: str("contact_info"),
	}
	if v, ok := body["image_filename"].(string); ok {
		fields.ImageFilename = &v
	}
	return fields
}
