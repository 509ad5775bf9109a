// Copyright 2025 book-recommender Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/base/log"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/config"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/logics"
	"github.com/A-VIRAL-GUPTAA/book-recommender-deployement/model"
)

// RestServer implements a REST-ful API server over the model store.
type RestServer struct {
	Store       *model.Store
	Recommender *logics.Recommender
	Config      *config.Config
	HttpHost    string
	HttpPort    int
	WebService  *restful.WebService
}

// NewRestServer creates a REST server from the configuration.
func NewRestServer(cfg *config.Config) *RestServer {
	store := model.NewStore(cfg.Model.Path)
	return &RestServer{
		Store:       store,
		Recommender: logics.NewRecommender(store, base.NewRandomGenerator(time.Now().UnixNano())),
		Config:      cfg,
		HttpHost:    cfg.Server.HttpHost,
		HttpPort:    cfg.Server.HttpPort,
		WebService:  new(restful.WebService),
	}
}

// StartHttpServer starts the REST-ful API server.
func (s *RestServer) StartHttpServer() {
	// register restful APIs
	s.CreateWebService()
	restful.DefaultContainer.Add(s.WebService)
	// register swagger UI
	specConfig := restfulspec.Config{
		WebServices: restful.RegisteredWebServices(),
		APIPath:     "/apidocs.json",
	}
	restful.DefaultContainer.Add(restfulspec.NewOpenAPIService(specConfig))
	// register prometheus
	http.Handle("/metrics", promhttp.Handler())

	log.Logger().Info("start http server",
		zap.String("url", fmt.Sprintf("http://%s:%d", s.HttpHost, s.HttpPort)))
	log.Logger().Fatal("failed to start http server",
		zap.Error(http.ListenAndServe(fmt.Sprintf("%s:%d", s.HttpHost, s.HttpPort), nil)))
}

func LogFilter(req *restful.Request, resp *restful.Response, chain *restful.FilterChain) {
	chain.ProcessFilter(req, resp)
	log.Logger().Info(fmt.Sprintf("%s %s", req.Request.Method, req.Request.URL),
		zap.Int("status_code", resp.StatusCode()))
}

// RecommendRequest is the request body of a recommendation query.
type RecommendRequest struct {
	BookName string `json:"book_name"`
}

// RecommendResponse is the returned data structure for recommendation
// queries.
type RecommendResponse struct {
	Recommendations []string `json:"recommendations"`
}

// PopularResponse is the returned data structure for popular books.
type PopularResponse struct {
	PopularBooks []model.PopularItem `json:"popular_books"`
}

// BooksResponse is the returned data structure for the title list.
type BooksResponse struct {
	AllBookTitles []string `json:"all_book_titles"`
}

// ModelStatus is the returned data structure for model loads.
type ModelStatus struct {
	NumPopular int  `json:"num_popular"`
	NumBooks   int  `json:"num_books"`
	Degraded   bool `json:"degraded"`
}

// CreateWebService creates web service.
func (s *RestServer) CreateWebService() {
	ws := s.WebService
	ws.Consumes(restful.MIME_JSON).Produces(restful.MIME_JSON)
	ws.Path("/api/")
	ws.Filter(LogFilter)

	// Get popular books
	ws.Route(ws.GET("/popular").To(s.getPopular).
		Doc("Get popular books.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.HeaderParameter("X-API-Key", "secret key for RESTful API")).
		Param(ws.QueryParameter("n", "number of returned books").DataType("int")).
		Writes(PopularResponse{}))
	// Get all book titles
	ws.Route(ws.GET("/books").To(s.getBooks).
		Doc("Get all book titles known to the model.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.HeaderParameter("X-API-Key", "secret key for RESTful API")).
		Writes(BooksResponse{}))
	// Get recommendations by title
	ws.Route(ws.GET("/recommend/{title}").To(s.getRecommend).
		Doc("Get recommendations for a book.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.HeaderParameter("X-API-Key", "secret key for RESTful API")).
		Param(ws.PathParameter("title", "title of the book").DataType("string")).
		Writes(RecommendResponse{}))
	// Get recommendations by request body
	ws.Route(ws.POST("/recommend").To(s.postRecommend).
		Doc("Get recommendations for a book.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"recommendation"}).
		Param(ws.HeaderParameter("X-API-Key", "secret key for RESTful API")).
		Reads(RecommendRequest{}).
		Writes(RecommendResponse{}))
	// Reload the model bundle
	ws.Route(ws.POST("/admin/load").To(s.loadModel).
		Doc("Reload the model bundle.").
		Metadata(restfulspec.KeyOpenAPITags, []string{"admin"}).
		Param(ws.HeaderParameter("X-API-Key", "secret key for RESTful API")).
		Writes(ModelStatus{}))
}

// ParseInt parses integers from the query parameter.
func ParseInt(request *restful.Request, name string, fallback int) (value int, err error) {
	valueString := request.QueryParameter(name)
	value, err = strconv.Atoi(valueString)
	if err != nil && valueString == "" {
		value = fallback
		err = nil
	}
	return
}

// getPopular gets popular books from the model store.
func (s *RestServer) getPopular(request *restful.Request, response *restful.Response) {
	// Authorize
	if !s.auth(request, response) {
		return
	}
	n, err := ParseInt(request, "n", s.Config.Server.DefaultN)
	if err != nil {
		BadRequest(response, err)
		return
	}
	if n < 0 {
		BadRequest(response, fmt.Errorf("n must not be negative"))
		return
	}
	popular := s.Store.Get().Popular
	if n > len(popular) {
		n = len(popular)
	}
	Ok(response, PopularResponse{PopularBooks: popular[:n]})
}

// getBooks gets all known titles from the model store.
func (s *RestServer) getBooks(request *restful.Request, response *restful.Response) {
	// Authorize
	if !s.auth(request, response) {
		return
	}
	Ok(response, BooksResponse{AllBookTitles: s.Store.Get().Books})
}

func (s *RestServer) getRecommend(request *restful.Request, response *restful.Response) {
	// Authorize
	if !s.auth(request, response) {
		return
	}
	title := request.PathParameter("title")
	s.recommend(title, response)
}

func (s *RestServer) postRecommend(request *restful.Request, response *restful.Response) {
	// Authorize
	if !s.auth(request, response) {
		return
	}
	var body RecommendRequest
	if err := request.ReadEntity(&body); err != nil {
		BadRequest(response, err)
		return
	}
	if body.BookName == "" {
		BadRequest(response, fmt.Errorf("missing \"book_name\" in request body"))
		return
	}
	s.recommend(body.BookName, response)
}

func (s *RestServer) recommend(title string, response *restful.Response) {
	start := time.Now()
	results := s.Recommender.Recommend(title)
	RecommendSeconds.Observe(time.Since(start).Seconds())
	Ok(response, RecommendResponse{Recommendations: results})
}

// loadModel reloads the bundle and publishes the new snapshot. A load
// failure falls back to the mock snapshot and still answers 200; the
// status reports the degraded state.
func (s *RestServer) loadModel(request *restful.Request, response *restful.Response) {
	// Authorize
	if !s.auth(request, response) {
		return
	}
	start := time.Now()
	if err := s.Store.Load(); err != nil {
		log.Logger().Warn("using mock data for demonstration", zap.Error(err))
	}
	LoadModelSeconds.Observe(time.Since(start).Seconds())
	snapshot := s.Store.Get()
	Ok(response, ModelStatus{
		NumPopular: len(snapshot.Popular),
		NumBooks:   len(snapshot.Books),
		Degraded:   snapshot.Degraded(),
	})
}

// BadRequest returns a bad request error.
func BadRequest(response *restful.Response, err error) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	log.Logger().Error("bad request", zap.Error(err))
	if err = response.WriteError(http.StatusBadRequest, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// InternalServerError returns an internal server error.
func InternalServerError(response *restful.Response, err error) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	log.Logger().Error("internal server error", zap.Error(err))
	if err = response.WriteError(http.StatusInternalServerError, err); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
}

// Ok sends the content as JSON to the client.
func Ok(response *restful.Response, content interface{}) {
	response.Header().Set("Access-Control-Allow-Origin", "*")
	if err := response.WriteAsJson(content); err != nil {
		log.Logger().Error("failed to write json", zap.Error(err))
	}
}

func (s *RestServer) auth(request *restful.Request, response *restful.Response) bool {
	if s.Config.Server.APIKey == "" {
		return true
	}
	apikey := request.HeaderParameter("X-API-Key")
	if apikey == s.Config.Server.APIKey {
		return true
	}
	log.Logger().Error("unauthorized", zap.String("X-API-Key", apikey))
	if err := response.WriteError(http.StatusUnauthorized, fmt.Errorf("unauthorized")); err != nil {
		log.Logger().Error("failed to write error", zap.Error(err))
	}
	return false
}
