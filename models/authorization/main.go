package authorization

import "beacon/api/utils"

// AuthContext carries the caller's pre-authenticated standing for the
// lifetime of one request. It is derived upstream (trusted proxy
// headers); the engine never issues or validates tokens itself.
type AuthContext struct {
	// caller holds registered-tier credentials
	RegisteredAccess bool

	// per-dataset grants for CONTROLLED datasets (dataset stable ids)
	DatasetGrants []string
}

func (a AuthContext) HasGrant(datasetId string) bool {
	return utils.StringInSlice(datasetId, a.DatasetGrants)
}

// Anonymous is the zero-trust context used when authorization is disabled
// or no credentials were forwarded.
func Anonymous() AuthContext {
	return AuthContext{}
}
