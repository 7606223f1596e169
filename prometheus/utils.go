package prometheus

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware tracks every request by its route template, so /parse/:folder
// counts as a single path whatever the folder.
func Middleware() gin.HandlerFunc {
	return func(g *gin.Context) {
		init := time.Now()
		reqData := getRequestInfo(g)

		GetClient().OpenRequest(reqData)
		g.Next()
		GetClient().ObserveDuration(reqData, init)
		GetClient().CloseRequest(reqData, strconv.Itoa(g.Writer.Status()))
	}
}

func getRequestInfo(g *gin.Context) RequestData {
	path := g.FullPath()
	if path == "" {
		path = "unmatched"
	}
	return RequestData{
		Method: g.Request.Method,
		Path:   path,
	}
}
