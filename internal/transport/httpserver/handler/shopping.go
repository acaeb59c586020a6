package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

func (h *Handlers) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	doc, err := h.Shopping.Download(r.Context(), user.ID)
	if err != nil {
		h.writeDomainError(w, r, "shopping.download", err, "user_id", user.ID)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Body); err != nil {
		h.logger(r).InternalError("shopping.download: write body failed", err, "user_id", user.ID)
	}
}
