package routes

import (
	"net/http"

	"furnish/auth"
	"furnish/contact"
	"furnish/customers"
	"furnish/faqs"
	"furnish/feedback"
	"furnish/gallery"
	"furnish/invoices"
	"furnish/middleware"
	"furnish/orders"
	"furnish/products"
	"furnish/ratelim"
	"furnish/utils"

	"github.com/julienschmidt/httprouter"
)

// api wraps every /api handler with the store-ready gate so a dead Mongo
// connection answers 503 before any handler dispatch.
func api(h httprouter.Handle) httprouter.Handle {
	return middleware.RequireStore(h)
}

func admin(h httprouter.Handle) httprouter.Handle {
	return middleware.RequireStore(middleware.RequireAdmin(h))
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/uploads/gallery/*filepath", http.Dir(utils.UploadDir("gallery")))
	router.ServeFiles("/uploads/feedback/*filepath", http.Dir(utils.UploadDir("feedback")))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/login", rl.Limit(api(auth.Login)))
	router.POST("/api/auth/register", rl.Limit(api(auth.Register)))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", api(products.GetProducts))
	router.GET("/api/products/:id", api(products.GetProduct))
	router.POST("/api/products", admin(products.CreateProduct))
	router.PUT("/api/products/:id", admin(products.UpdateProduct))
	router.DELETE("/api/products/:id", admin(products.DeleteProduct))
}

func AddCustomerRoutes(router *httprouter.Router) {
	router.GET("/api/customers", admin(customers.GetCustomers))
	router.GET("/api/customers/:id", admin(customers.GetCustomer))
	router.POST("/api/customers", api(customers.CreateCustomer))
	router.PUT("/api/customers/:id", admin(customers.UpdateCustomer))
	router.DELETE("/api/customers/:id", admin(customers.DeleteCustomer))
}

func AddOrderRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/orders", api(orders.GetOrders))
	router.GET("/api/orders/:id", api(orders.GetOrder))
	router.POST("/api/orders", rl.Limit(api(orders.CreateOrder)))
	router.PUT("/api/orders/:id", admin(orders.UpdateOrder))
	router.DELETE("/api/orders/:id", admin(orders.DeleteOrder))
}

func AddInvoiceRoutes(router *httprouter.Router) {
	router.GET("/api/invoices", admin(invoices.GetInvoices))
	router.GET("/api/invoices/:id", admin(invoices.GetInvoice))
	router.GET("/api/invoices/:id/pdf", admin(invoices.PrintInvoice))
	router.POST("/api/invoices", admin(invoices.CreateInvoice))
	router.PUT("/api/invoices/:id", admin(invoices.UpdateInvoice))
	router.DELETE("/api/invoices/:id", admin(invoices.DeleteInvoice))
}

func AddFeedbackRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/feedback", admin(feedback.GetFeedback))
	router.GET("/api/feedback/photos", api(feedback.GetCustomerPhotos))
	// CreateFeedback branches on Content-Type, so multipart submissions work
	// on the plain path too; the alias avoids a wildcard clash with :id/reply.
	router.POST("/api/feedback", rl.Limit(api(feedback.CreateFeedback)))
	router.POST("/api/feedback-with-image", rl.Limit(api(feedback.CreateFeedbackWithImage)))
	router.PUT("/api/feedback/:id", admin(feedback.UpdateFeedback))
	router.POST("/api/feedback/:id/reply", admin(feedback.ReplyToFeedback))
	router.PATCH("/api/feedback/:id/visibility", admin(feedback.ToggleVisibility))
}

func AddGalleryRoutes(router *httprouter.Router) {
	router.GET("/api/gallery", api(gallery.GetImages))
	router.POST("/api/gallery", admin(gallery.CreateImage))
	router.POST("/api/gallery/upload", admin(gallery.UploadImage))
	router.PUT("/api/gallery/:id", admin(gallery.UpdateImage))
	router.DELETE("/api/gallery/:id", admin(gallery.DeleteImage))
}

func AddFAQRoutes(router *httprouter.Router) {
	router.GET("/api/faqs", api(faqs.GetFAQs))
	router.GET("/api/faqs/:id", api(faqs.GetFAQ))
	router.POST("/api/faqs", admin(faqs.CreateFAQ))
	router.PUT("/api/faqs/:id", admin(faqs.UpdateFAQ))
	router.DELETE("/api/faqs/:id", admin(faqs.DeleteFAQ))
}

func AddContactRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/contact", admin(contact.GetMessages))
	router.POST("/api/contact", rl.Limit(api(contact.CreateMessage)))
	router.PATCH("/api/contact/:id/read", admin(contact.MarkRead))
}
