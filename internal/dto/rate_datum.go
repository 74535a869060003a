package dto

// CreateRateDatumRequest defines the data needed to record a rate observation:
// as of Date, one unit of RefCurrencyID is worth Amount units of
// RefAmountCurrencyID. Date must be ISO-8601 UTC with an explicit "Z".
type CreateRateDatumRequest struct {
	RefCurrencyID       string `json:"refCurrencyId" binding:"required,uuid"`
	RefAmountCurrencyID string `json:"refAmountCurrencyId" binding:"required,uuid"`
	Amount              string `json:"amount" binding:"required"`
	Date                string `json:"date" binding:"required"`
}

// CreateRateDatumResponse returns the id of the created datum.
type CreateRateDatumResponse struct {
	ID string `json:"id"`
}
