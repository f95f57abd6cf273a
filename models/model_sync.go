package models

// ModelSyncResponse reports a model cache warm-up run
// Example: {"status": "success", "products": 12, "total": 20, "fetched": 19, "failed": 1, "errors": ["prod_07: ..."]}
type ModelSyncResponse struct {
	Status   string   `json:"status"`
	Products int      `json:"products"`
	Total    int      `json:"total"`
	Fetched  int      `json:"fetched"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}
