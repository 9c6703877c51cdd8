package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/doclens/doclens/internal/classify"
	"github.com/doclens/doclens/internal/model"
	"github.com/doclens/doclens/internal/store"
)

// allowedExtensions lists the upload types the API accepts. PDF and Word
// content is not parsed; a file summary line stands in for the text, the
// same behavior the original product simulated.
var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		writeError(w, http.StatusBadRequest, "unsupported file type: upload a text, PDF, or Word document")
		return
	}

	var content string
	if ext == ".txt" {
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusBadRequest, "could not read file")
			return
		}
		content = string(data)
	} else {
		content = fmt.Sprintf("Dosya analizi: %s (%.1f KB)", header.Filename, float64(header.Size)/1024)
	}

	explain := r.FormValue("explain") == "true" && s.cfg.Premium

	start := time.Now()
	result := s.engine.Classify(content, s.registry.Ordered(), explain)

	if lang := r.FormValue("language"); lang != "" {
		if !classify.SupportedLanguage(classify.LanguageCode(lang)) {
			writeError(w, http.StatusBadRequest, "unsupported language code")
			return
		}
		result.Language = lang
	}

	doc := model.NewDocument(header.Filename, content, result)
	if err := s.store.SaveDocument(r.Context(), doc); err != nil {
		zap.L().Error("save document", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not persist document")
		return
	}

	writeJSON(w, http.StatusOK, model.ClassifyResponse{
		Classifications:  []model.ClassificationResult{*result},
		DetectedLanguage: result.Language,
		ProcessingTime:   time.Since(start).Round(time.Millisecond).String(),
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"languages": classify.Languages()})
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	premium := s.cfg.Premium || r.URL.Query().Get("premium") == "true"
	writeJSON(w, http.StatusOK, map[string]any{"categories": s.registry.Names(premium)})
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category payload")
		return
	}
	if err := s.registry.Add(&category); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, category)
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		writeError(w, http.StatusBadRequest, "invalid category payload")
		return
	}
	category.ID = chi.URLParam(r, "id")
	if err := s.registry.Update(&category); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.registry.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	filter := store.DocumentFilter{Category: r.URL.Query().Get("category")}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		filter.Offset, _ = strconv.Atoi(v)
	}

	docs, err := s.store.ListDocuments(r.Context(), filter)
	if err != nil {
		zap.L().Error("list documents", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list documents")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"documents": docs})
}

func (s *Server) handleRelationships(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.ListDocuments(r.Context(), store.DocumentFilter{Limit: 1000})
	if err != nil {
		zap.L().Error("list documents", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load session documents")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"groups":    classify.FindRelationships(docs),
		"anomalies": classify.SessionAnomalies(docs),
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.ResetSession(r.Context())
	if err != nil {
		zap.L().Error("reset session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not reset session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

type feedbackRequest struct {
	DocumentID string `json:"document_id"`
	CategoryID string `json:"category_id"`
	Verdict    string `json:"verdict"`
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid feedback payload")
		return
	}
	if req.DocumentID == "" || req.CategoryID == "" {
		writeError(w, http.StatusBadRequest, "document_id and category_id are required")
		return
	}

	doc, err := s.store.GetDocument(r.Context(), req.DocumentID)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown document")
		return
	}
	category, ok := s.registry.Get(req.CategoryID)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown category")
		return
	}

	updated, err := classify.IncorporateFeedback(*category, doc.Content, classify.Feedback(req.Verdict))
	if err != nil {
		writeError(w, http.StatusBadRequest, "verdict must be correct or incorrect")
		return
	}
	if err := s.registry.Update(&updated); err != nil {
		zap.L().Error("update category", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not update category")
		return
	}
	if err := s.store.RecordFeedback(r.Context(), req.DocumentID, req.CategoryID, req.Verdict); err != nil {
		zap.L().Error("record feedback", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not record feedback")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
