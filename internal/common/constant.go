package common

// AccessTokenQueryParam is the query parameter a websocket client may use to
// present its token when it cannot set headers (browser WebSocket API).
const AccessTokenQueryParam = "token"

// SecretKeyEnvName is the environment variable holding the JWT HMAC secret.
const SecretKeyEnvName = "MATCHROOM_SECRET_KEY"
