package controllers

import (
	"net/http"
	"strconv"
	"strings"

	dbpkg "foodgram/db"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

func ParamID(c *gin.Context, name string) (int64, bool) {
	v := c.Param(name)
	if v == "" {
		RespondError(c, name+" is required", http.StatusBadRequest)
		return 0, false
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, name+" is invalid", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// queryFlag aceita 1/true para filtros booleanos.
func queryFlag(c *gin.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(name))) {
	case "1", "true":
		return true
	}
	return false
}

// queryInt devolve def quando o parâmetro falta ou não é um inteiro >= 0.
func queryInt(c *gin.Context, name string, def int) int {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

// mustDB pega o banco do contexto; responde 500 se o router não injetou.
func mustDB(c *gin.Context) (*gorm.DB, bool) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}
