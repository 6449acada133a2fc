package inventory

type (
	GetInventoryResponseBody = map[string]interface{}
	GetHostResponseBody      = map[string]interface{}

	RefreshResponseBody = struct {
		Hosts int
	}
)
