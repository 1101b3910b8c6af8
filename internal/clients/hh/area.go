package hh

type Area struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}
