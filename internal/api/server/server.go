package server

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

// New wraps the router in an http.Server so main controls shutdown.
func New(addr string, router *ginext.Engine) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: router,
	}
}
