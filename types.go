package main

// RequestBody is the JSON body accepted by the POST endpoints. All of them
// take a single free-form query field.
type RequestBody struct {
	Query string `json:"query"`
}
