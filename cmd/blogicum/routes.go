// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/blogicum/internal/config"
	"github.com/olegiv/blogicum/internal/handler"
	"github.com/olegiv/blogicum/internal/imaging"
	"github.com/olegiv/blogicum/internal/middleware"
	"github.com/olegiv/blogicum/internal/render"
	"github.com/olegiv/blogicum/internal/service"
	"github.com/olegiv/blogicum/internal/version"
	"github.com/olegiv/blogicum/web"
)

// application holds the long-lived dependencies shared by all routes.
type application struct {
	cfg             *config.Config
	db              *sql.DB
	sessionManager  *scs.SessionManager
	renderer        *render.Renderer
	loginProtection *middleware.LoginProtection
	version         version.Info
}

// newRenderer parses the embedded templates.
func newRenderer(sm *scs.SessionManager) (*render.Renderer, error) {
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return nil, fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sm,
		MediaURL:       handler.RouteMedia,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing renderer: %w", err)
	}
	return renderer, nil
}

// routes builds the router with every middleware and handler wired.
func (app *application) routes() (http.Handler, error) {
	posts := service.NewPostService(app.db, app.cfg.PostsPerPage)
	gate := service.NewGate(app.db, posts)
	accounts := service.NewAccountService(app.db)
	images := imaging.NewProcessor(app.cfg.UploadsDir, app.cfg.ImageMaxWidth)

	errorPages := handler.NewErrorPages(app.renderer, app.sessionManager)
	blogHandler := handler.NewBlogHandler(app.renderer, app.sessionManager, posts)
	postHandler := handler.NewPostHandler(app.renderer, app.sessionManager, posts, gate, images)
	commentHandler := handler.NewCommentHandler(app.renderer, app.sessionManager, posts, gate)
	profileHandler := handler.NewProfileHandler(app.renderer, app.sessionManager, gate)
	authHandler := handler.NewAuthHandler(app.renderer, app.sessionManager, accounts, app.loginProtection)
	pagesHandler := handler.NewPagesHandler(app.renderer, app.sessionManager)
	healthHandler := handler.NewHealthHandler(app.db, app.cfg.UploadsDir, app.version.Version)
	seoHandler := handler.NewSEOHandler(posts, app.cfg.SiteURL, app.cfg.IsDevelopment())

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, fmt.Errorf("getting static fs: %w", err)
	}

	csrfConfig := middleware.DefaultCSRFConfig([]byte(app.cfg.SessionSecret), app.cfg.IsDevelopment())
	csrfConfig.ErrorHandler = http.HandlerFunc(errorPages.Forbidden)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(app.cfg.IsDevelopment())))
	r.Use(app.sessionManager.LoadAndSave)
	// Error pages need the session, so recovery sits after it.
	r.Use(errorPages.Recoverer)
	r.Use(middleware.OptionalLoadUser(app.sessionManager, app.db))
	r.Use(middleware.CSRF(csrfConfig))

	r.NotFound(errorPages.NotFound)
	r.MethodNotAllowed(errorPages.MethodNotAllowed)

	r.Get(handler.RouteHealth, healthHandler.Health)
	r.Get(handler.RouteSitemap, seoHandler.Sitemap)
	r.Get(handler.RouteRobots, seoHandler.Robots)
	r.With(middleware.StaticCache(middleware.StaticMaxAge)).
		Handle(handler.RouteStatic+"/*", handler.FileServer(handler.RouteStatic+"/", http.FS(staticFS)))
	r.With(middleware.StaticCache(middleware.MediaMaxAge)).
		Handle(handler.RouteMedia+"/*", handler.FileServer(handler.RouteMedia+"/", http.Dir(app.cfg.UploadsDir)))

	r.Get(handler.RouteRoot, blogHandler.Index)
	r.Get(handler.RouteCategory, blogHandler.Category)

	r.Route(handler.RoutePosts, func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Get(handler.RoutePostCreate, postHandler.NewForm)
			r.Post(handler.RoutePostCreate, postHandler.Create)
		})

		r.Route(handler.RouteParamID, func(r chi.Router) {
			r.Get("/", blogHandler.PostDetail)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireLogin)
				r.Get(handler.RouteSuffixEdit, postHandler.EditForm)
				r.Post(handler.RouteSuffixEdit, postHandler.Update)
				r.Get(handler.RouteSuffixDelete, postHandler.DeleteForm)
				r.Post(handler.RouteSuffixDelete, postHandler.Delete)
				r.Post(handler.RouteSuffixComment, commentHandler.Add)
				r.Get(handler.RouteEditComment, commentHandler.EditForm)
				r.Post(handler.RouteEditComment, commentHandler.Update)
				r.Get(handler.RouteDeleteComment, commentHandler.DeleteForm)
				r.Post(handler.RouteDeleteComment, commentHandler.Delete)
			})
		})
	})

	r.Route(handler.RouteProfile, func(r chi.Router) {
		r.With(middleware.RequireLogin).Get(handler.RouteProfileEdit, profileHandler.EditForm)
		r.With(middleware.RequireLogin).Post(handler.RouteProfileEdit, profileHandler.Update)
		r.Get(handler.RouteParamUsername, blogHandler.Profile)
	})

	r.Route(handler.RouteAuth, func(r chi.Router) {
		r.Get(handler.RouteRegistration, authHandler.RegistrationForm)
		r.Post(handler.RouteRegistration, authHandler.Register)
		r.Get(handler.RouteLogin, authHandler.LoginForm)
		r.With(app.loginProtection.Middleware(http.HandlerFunc(errorPages.TooManyRequests))).
			Post(handler.RouteLogin, authHandler.Login)
		r.Post(handler.RouteLogout, authHandler.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLogin)
			r.Get(handler.RoutePasswordChange, authHandler.PasswordChangeForm)
			r.Post(handler.RoutePasswordChange, authHandler.PasswordChange)
			r.Get(handler.RoutePasswordDone, authHandler.PasswordChangeDone)
		})
	})

	r.Route(handler.RoutePages, func(r chi.Router) {
		r.Get(handler.RouteAbout, pagesHandler.About)
		r.Get(handler.RouteRules, pagesHandler.Rules)
	})

	return r, nil
}
