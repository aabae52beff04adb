package main

import (
	"StorefrontAPI/external/abstractapi"
	"StorefrontAPI/external/midtrans"
	"StorefrontAPI/external/resend"

	"StorefrontAPI/internal/chatbot"
	"StorefrontAPI/internal/config"
	"StorefrontAPI/internal/db"
	"StorefrontAPI/internal/repository"
	"StorefrontAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	// ======================
	// EXTERNALS
	// ======================
	var emailValidator services.EmailValidator
	if cfg.UseEmailReputation {
		emailValidator, err = abstractapi.NewAbstractReputationValidator()
		if err != nil {
			log.Fatal(err)
		}
	} else {
		emailValidator = services.NewLocalValidator()
	}

	var mailer services.Mailer
	if cfg.UseMailer {
		mailer, err = resend.NewResendMailer(cfg.MailFrom)
		if err != nil {
			log.Fatal(err)
		}
	}

	snapClient := midtrans.NewSnapClient()

	// ======================
	// REPOSITORIES
	// ======================
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	authRepo := repository.NewAuthRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	// ======================
	// SERVICES
	// ======================
	pricing := services.Pricing{ShippingFee: cfg.ShippingFee, TaxRate: cfg.TaxRate}

	productSvc := services.NewProductService(productRepo, categoryRepo)
	cartSvc := services.NewCartService(cartRepo, productRepo, pricing)
	checkoutSvc := services.NewCheckoutService(cartRepo, orderRepo, emailValidator, mailer, pricing)
	orderSvc := services.NewOrderService(orderRepo)
	authSvc := services.NewAuthService(authRepo)
	paymentSvc := services.NewPaymentService(paymentRepo, orderRepo, snapClient)
	chatRegistry := chatbot.NewRegistry(productRepo, cfg.ChatReplyDelay)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/api")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerSessionRoutes(api)
	registerAuthRoutes(api, authSvc)
	registerProductRoutes(api, productSvc)
	registerCategoryRoutes(api, productSvc)
	registerCartRoutes(api, cartSvc)
	registerOrderRoutes(api, orderSvc, checkoutSvc)
	registerChatbotRoutes(api, chatRegistry)
	registerPaymentRoutes(api, paymentSvc)

	// ======================
	// SERVER
	// ======================
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
