package graphql_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gql "github.com/shashiranjanraj/shopdesk/pkg/graphql"
)

func helloSchema(t *testing.T) graphql.Schema {
	t.Helper()
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					return "hello " + name, nil
				},
			},
		},
	})
	s, err := gql.NewSchema(query)
	require.NoError(t, err)
	return s
}

func TestHandler_ExecutesQueryWithVariables(t *testing.T) {
	h := gql.Handler(helloSchema(t))

	body := `{"query":"query($n: String){ hello(name: $n) }","variables":{"n":"shop"}}`
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data struct {
			Hello string `json:"hello"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "hello shop", res.Data.Hello)
}

func TestHandler_RejectsBadBodies(t *testing.T) {
	h := gql.Handler(helloSchema(t))

	for _, body := range []string{"", "{", `{"query":""}`} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestHandler_ReportsQueryErrors(t *testing.T) {
	h := gql.Handler(helloSchema(t))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ nope }"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)
}
