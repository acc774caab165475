package chi

import "net/http"

type wipeRequest struct {
	Confirm bool `json:"confirm"`
}

type wipeResponse struct {
	Archived map[string]int `json:"archived"`
	Total    int            `json:"total"`
}

func (s *Server) adminWipe(w http.ResponseWriter, r *http.Request) {
	var req wipeRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	res, err := s.admin.Wipe(r.Context(), groupID(r), req.Confirm)
	if err != nil {
		s.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, wipeResponse{
		Archived: res.Archived,
		Total:    res.Total(),
	})
}
