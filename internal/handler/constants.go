// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"strconv"
)

// Route paths.
const (
	RouteRoot           = "/"
	RouteCategory       = "/category/{slug}"
	RoutePosts          = "/posts"
	RoutePostCreate     = "/create"
	RouteParamID        = "/{id}"
	RouteSuffixEdit     = "/edit"
	RouteSuffixDelete   = "/delete"
	RouteSuffixComment  = "/comment"
	RouteEditComment    = "/edit_comment/{comment_id}"
	RouteDeleteComment  = "/delete_comment/{comment_id}"
	RouteProfile        = "/profile"
	RouteProfileEdit    = "/edit"
	RouteParamUsername  = "/{username}"
	RouteAuth           = "/auth"
	RouteRegistration   = "/registration"
	RouteLogin          = "/login"
	RouteLogout         = "/logout"
	RoutePasswordChange = "/password_change"
	RoutePasswordDone   = "/password_change/done"
	RoutePages          = "/pages"
	RouteAbout          = "/about"
	RouteRules          = "/rules"
	RouteHealth         = "/health"
	RouteSitemap        = "/sitemap.xml"
	RouteRobots         = "/robots.txt"
	RouteMedia          = "/media"
	RouteStatic         = "/static"
)

// Redirect targets.
const (
	redirectIndex = "/"
	redirectLogin = RouteAuth + RouteLogin
)

// Page templates.
const (
	tmplIndex        = "blog/index"
	tmplCategory     = "blog/category"
	tmplDetail       = "blog/detail"
	tmplCreate       = "blog/create"
	tmplComment      = "blog/comment"
	tmplProfile      = "blog/profile"
	tmplUser         = "blog/user"
	tmplLogin        = "registration/login"
	tmplRegistration = "registration/registration_form"
	tmplLoggedOut    = "registration/logged_out"
	tmplPasswordForm = "registration/password_change_form"
	tmplPasswordDone = "registration/password_change_done"
	tmplAbout        = "pages/about"
	tmplRules        = "pages/rules"
	tmplForbidden    = "errors/403csrf"
	tmplNotFound     = "errors/404"
	tmplServerError  = "errors/500"
	tmplTooMany      = "errors/429"
)

// Flash messages.
const (
	flashPostCreated    = "Публикация успешно добавлена!"
	flashPostUpdated    = "Публикация успешно отредактирована!"
	flashPostDeleted    = "Публикация удалена."
	flashProfileUpdated = "Профиль успешно обновлен!"
	flashRegistered     = "Регистрация прошла успешно. Войдите, используя новый пароль."
)

// Form error messages owned by handlers rather than validation rules.
const (
	msgUsernameTaken      = "Пользователь с таким именем уже существует."
	msgInvalidCredentials = "Пожалуйста, введите правильные имя пользователя и пароль. Оба поля могут быть чувствительны к регистру."
	msgAccountLocked      = "Слишком много неудачных попыток входа. Повторите через %s."
	msgAttemptsLeft       = "Осталось попыток: %d."
	msgOldPasswordWrong   = "Ваш старый пароль введён неправильно. Пожалуйста, введите его снова."
)

func postURL(id int64) string {
	return RoutePosts + "/" + strconv.FormatInt(id, 10)
}

func profileURL(username string) string {
	return RouteProfile + "/" + url.PathEscape(username)
}
