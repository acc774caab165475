package ladle

import "context"

// AdminService holds destructive maintenance operations.
type AdminService struct {
	c *Client
}

// WipeResult reports how many documents each collection archived.
type WipeResult struct {
	Archived map[string]int `json:"archived"`
	Total    int            `json:"total"`
}

type wipeRequest struct {
	Confirm bool `json:"confirm"`
}

// Wipe archives every active document owned by the client's group. The
// configured all-groups sentinel wipes every tenant. Refused without
// confirm.
func (s *AdminService) Wipe(ctx context.Context, confirm bool) (WipeResult, error) {
	var out WipeResult
	err := s.c.post(ctx, "/api/v1/admin/wipe", wipeRequest{Confirm: confirm}, &out)
	return out, err
}
