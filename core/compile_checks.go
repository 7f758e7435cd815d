package core

var _ ConnectorService = (*Service)(nil)
