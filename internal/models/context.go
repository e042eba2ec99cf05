package models

// ContextKey is the type for context keys the backend sets on requests.
type ContextKey string

// ContextUser is the gin context key under which the authenticated
// user is stored by the router middleware.
const ContextUser ContextKey = "yuk-nabung-user"
