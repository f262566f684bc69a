package constvars

type contextKey string

const (
	CONTEXT_REQUEST_ID_KEY           = contextKey("request_id")
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY = contextKey("is_client_request_id")
)

const (
	AppName = "telecare-service"

	// LocalSyncIDPrefix marks client-generated booking ids, never produced by the server.
	LocalSyncIDPrefix = "local-"
)
