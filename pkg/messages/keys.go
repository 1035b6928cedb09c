package messages

// Widget message keys. Field validation keys live in the validator package.
const (
	KeyTicketCreated    = "ticketCreated"
	KeyTicketFailed     = "ticketFailed"
	KeySubscribeSuccess = "subscribeSuccess"
	KeySubscribeFailed  = "subscribeFailed"
	KeyGenderRequired   = "genderRequired"
	KeyLocationRequired = "locationRequired"
	KeyNoLocationResult = "noLocationResult"
	KeyNameRequired     = "nameRequired"
	KeyMessageRequired  = "messageRequired"
	KeyBotCheckRequired = "botCheckRequired"
	KeySubmitInProgress = "submitInProgress"
	KeyUnexpectedError  = "unexpectedError"
)

// Request error keys used by handler.HTTPError.
const (
	KeyBadRequest      = "badRequest"
	KeyNotFound        = "notFound"
	KeyUnprocessable   = "unprocessable"
	KeyTooManyRequests = "tooManyRequests"
)
