package httpadapter

import (
	"fmt"
	"net/http"

	"github.com/Piyush-6177/Exam-Pilot/internal/core/domain"
	"github.com/Piyush-6177/Exam-Pilot/internal/export"
)

// exportAnalysis renders a finished job's result as a downloadable document.
// Formats: markdown (default) and xlsx. Exporting an unfinished job is a
// conflict, not an error in the job itself.
func (rt *Router) exportAnalysis(w http.ResponseWriter, r *http.Request, id string) {
	job, err := rt.jobsUC.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if job.Status != domain.JobSucceeded || job.Result == nil {
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": fmt.Sprintf("analysis %s is %s; only succeeded analyses can be exported", id, job.Status),
		})
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "markdown"
	}

	switch format {
	case "markdown":
		body := export.Markdown(job.Result, job.FinishedAt)
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "priority-matrix-"+id+".md"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	case "xlsx":
		body, err := export.XLSX(job.Result, job.FinishedAt)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "priority-matrix-"+id+".xlsx"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(body)
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": fmt.Sprintf("unsupported export format %q", format),
		})
	}
}
