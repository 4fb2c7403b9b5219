package devstore

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Collections the service accepts. Anything else is 404, like the hosted
// service answers for an unprovisioned collection.
var knownCollections = map[string]bool{
	"products":   true,
	"cartItems":  true,
	"orders":     true,
	"orderItems": true,
}

type recordHandlers struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func newRecordHandlers(pool *pgxpool.Pool, logger *log.Logger) *recordHandlers {
	return &recordHandlers{pool: pool, logger: logger}
}

// list returns records matching every `where.<field>` equality filter, in
// insertion order unless orderBy names a field. Field access goes through
// bound parameters, so arbitrary filter names are safe.
func (h *recordHandlers) list(c *gin.Context) {
	collection := c.Param("collection")
	if !knownCollections[collection] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	sql := `SELECT data FROM records WHERE collection = $1`
	args := []any{collection}

	for key, values := range c.Request.URL.Query() {
		field, ok := strings.CutPrefix(key, "where.")
		if !ok || len(values) == 0 {
			continue
		}
		args = append(args, field, values[0])
		sql += ` AND data ->> $` + strconv.Itoa(len(args)-1) + ` = $` + strconv.Itoa(len(args))
	}

	orderBy := c.Query("orderBy")
	switch {
	case orderBy == "":
		sql += ` ORDER BY created_at ASC`
	default:
		field, desc := strings.CutSuffix(orderBy, " desc")
		args = append(args, strings.TrimSpace(field))
		// jsonb ordering is type-aware: numbers sort numerically.
		sql += ` ORDER BY data -> $` + strconv.Itoa(len(args))
		if desc {
			sql += ` DESC`
		} else {
			sql += ` ASC`
		}
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		args = append(args, limit)
		sql += ` LIMIT $` + strconv.Itoa(len(args))
	}

	rows, err := h.pool.Query(c.Request.Context(), sql, args...)
	if err != nil {
		h.logger.Printf("list %s: %v", collection, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	defer rows.Close()

	items := []json.RawMessage{}
	for rows.Next() {
		var data json.RawMessage
		if err := rows.Scan(&data); err != nil {
			h.logger.Printf("list %s: scan: %v", collection, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		items = append(items, data)
	}
	if err := rows.Err(); err != nil {
		h.logger.Printf("list %s: rows: %v", collection, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// create inserts one record. The caller supplies the globally unique id;
// a duplicate is 409.
func (h *recordHandlers) create(c *gin.Context) {
	collection := c.Param("collection")
	if !knownCollections[collection] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	var record map[string]any
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record body"})
		return
	}
	id, _ := record["id"].(string)
	if strings.TrimSpace(id) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record id required"})
		return
	}

	_, err := h.pool.Exec(c.Request.Context(),
		`INSERT INTO records (collection, id, data) VALUES ($1, $2, $3)`,
		collection, id, record)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "id already exists"})
			return
		}
		h.logger.Printf("create %s/%s: %v", collection, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "insert failed"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

// patch merges a partial record into an existing one; 404 when the id is
// absent. The id field itself is immutable.
func (h *recordHandlers) patch(c *gin.Context) {
	collection := c.Param("collection")
	if !knownCollections[collection] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid patch body"})
		return
	}
	delete(patch, "id")

	tag, err := h.pool.Exec(c.Request.Context(),
		`UPDATE records SET data = data || $3 WHERE collection = $1 AND id = $2`,
		collection, c.Param("id"), patch)
	if err != nil {
		h.logger.Printf("patch %s/%s: %v", collection, c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if tag.RowsAffected() == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such record"})
		return
	}

	c.Status(http.StatusNoContent)
}

// remove deletes a record; deleting a missing id is still 204.
func (h *recordHandlers) remove(c *gin.Context) {
	collection := c.Param("collection")
	if !knownCollections[collection] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown collection"})
		return
	}

	if _, err := h.pool.Exec(c.Request.Context(),
		`DELETE FROM records WHERE collection = $1 AND id = $2`,
		collection, c.Param("id")); err != nil {
		h.logger.Printf("delete %s/%s: %v", collection, c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}

	c.Status(http.StatusNoContent)
}
