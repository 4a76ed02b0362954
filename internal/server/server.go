package server

// Server bundles the entity-specific HTTP servers behind one route table.
type Server struct {
	SessionServer
	LotsServer
}

func NewServer(
	sessionServer SessionServer,
	lotsServer LotsServer,
) Server {
	return Server{
		SessionServer: sessionServer,
		LotsServer:    lotsServer,
	}
}
