package payment

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

// Callbacks are hit by the gateway and the customer's browser; neither
// carries our JWT, so they register on the public group.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/gateway/result", h.ResultCallback)
	rg.GET("/payments/gateway/success", h.SuccessCallback)
}

func (h *Handler) ResultCallback(c *gin.Context) {
	rawBody, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(strings.NewReader(string(rawBody)))
	_ = c.Request.ParseForm()

	outSum := c.PostForm("OutSum")
	invID, err := strconv.ParseInt(c.PostForm("InvId"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "bad request")
		return
	}
	signature := c.PostForm("SignatureValue")
	shp := collectShp(c)

	ack, err := h.service.HandleResultCallback(c.Request.Context(), outSum, invID, signature, shp, string(rawBody))
	if err != nil {
		h.loggerf("level=error msg=gateway result callback failed inv_id=%d err=%v", invID, err)
		if err == ErrInvalidSignature || err == ErrAmountMismatch {
			c.String(http.StatusForbidden, "forbidden")
			return
		}
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.String(http.StatusOK, ack)
}

func (h *Handler) SuccessCallback(c *gin.Context) {
	outSum := c.Query("OutSum")
	invID, err := strconv.ParseInt(c.Query("InvId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid InvId"})
		return
	}
	signature := c.Query("SignatureValue")
	shp := collectShp(c)

	ok, err := h.service.HandleSuccessCallback(c.Request.Context(), outSum, invID, signature, shp)
	if err != nil {
		h.loggerf("level=error msg=gateway success callback failed inv_id=%d err=%v", invID, err)
		if err == ErrInvalidSignature || err == ErrAmountMismatch {
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, SuccessCallbackResponse{Status: "ok", Validated: ok})
}

func collectShp(c *gin.Context) map[string]string {
	res := map[string]string{}
	for k, v := range c.Request.Form {
		if strings.HasPrefix(strings.ToLower(k), "shp_") && len(v) > 0 {
			res[trimShpKey(k)] = v[0]
		}
	}
	for k, v := range c.Request.URL.Query() {
		if strings.HasPrefix(strings.ToLower(k), "shp_") && len(v) > 0 {
			res[trimShpKey(k)] = v[0]
		}
	}
	return res
}

func trimShpKey(k string) string {
	if len(k) < 4 {
		return k
	}
	return k[4:]
}
