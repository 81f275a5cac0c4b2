package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, contactHandler *ContactHandler, eventsHandler *EventsHandler) {
	if importHandler != nil {
		server.POST("/api/v1/imports/contacts", importHandler.UploadContacts)
		server.GET("/api/v1/imports", importHandler.ListImports)
	}
	if eventsHandler != nil {
		server.GET("/api/v1/imports/events", eventsHandler.Stream)
	}
	if contactHandler != nil {
		server.GET("/api/v1/contacts", contactHandler.GetContactByEmail)
	}
}
