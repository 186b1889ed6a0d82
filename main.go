package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"beacon/api/contexts"
	gam "beacon/api/middleware"
	"beacon/api/models"
	serviceInfoConstants "beacon/api/models/constants/service-info"
	beaconMvc "beacon/api/mvc/beacon"
	serviceInfoMvc "beacon/api/mvc/service-info"
	esRepo "beacon/api/repositories/elasticsearch"
	accessService "beacon/api/services/access"
	beaconService "beacon/api/services/beacon"
	overviewService "beacon/api/services/overview"
	variantsService "beacon/api/services/variants"
	"beacon/api/utils"

	"github.com/kelseyhightower/envconfig"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
)

func main() {
	// Gather environment variables
	var cfg models.Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	fmt.Printf("Using : \n"+

		"\tDebug : %t \n\n"+

		"\tBeacon Id : %s \n"+
		"\tBeacon Name : %s \n"+
		"\tBeacon API Version : %s \n"+
		"\tAccess Levels Path : %s \n\n"+

		"\tElasticsearch Url : %s \n"+
		"\tElasticsearch Username : %s\n\n"+

		"\tAuthorization Enabled : %t\n"+
		"\tRegistered Tier Header : %s\n"+
		"\tDataset Grants Header : %s\n\n"+

		"\tOverview Refresh (minutes) : %d\n"+
		"\tSub-Query Timeout (seconds) : %d\n\n"+

		"Running on Port : %s\n",

		cfg.Debug,
		cfg.Beacon.Id, cfg.Beacon.Name, cfg.Beacon.ApiVersion,
		cfg.Beacon.AccessLevelsPath,
		cfg.Elasticsearch.Url, cfg.Elasticsearch.Username,
		cfg.AuthX.IsAuthorizationEnabled,
		cfg.AuthX.RegisteredTierHeader,
		cfg.AuthX.DatasetGrantsHeader,
		cfg.Overview.RefreshEveryMinutes,
		cfg.Query.SubQueryTimeoutSeconds,
		cfg.Api.Port)
	// --

	// Instantiate Server
	e := echo.New()

	// Service Connections:
	// -- Elasticsearch
	es := utils.CreateEsConnection(&cfg)
	store := &esRepo.EsVariantStore{Config: &cfg, Client: es}

	// Service Singletons
	az, azErr := accessService.NewAccessService(&cfg)
	if azErr != nil {
		fmt.Println(azErr)
		os.Exit(2)
	}
	vs := variantsService.NewVariantService(store, time.Duration(cfg.Query.SubQueryTimeoutSeconds)*time.Second)
	bs := beaconService.NewBeaconService(&cfg, az)
	ov := overviewService.NewOverviewService(store, &cfg)

	// Configure Server
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
	}))

	// -- Override handlers with "custom Beacon" context
	//		to be able to provide variables and global singletons
	e.Use(func(h echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bc := &contexts.BeaconContext{
				Context:         c,
				Es7Client:       es,
				Config:          &cfg,
				AccessService:   az,
				VariantService:  vs,
				BeaconService:   bs,
				OverviewService: ov,
			}
			return h(bc)
		}
	})

	// Global Middleware
	e.Use(gam.RetrieveAuthContext)

	// Begin MVC Routes
	// -- Root
	e.GET("/", func(c echo.Context) error {
		fmt.Printf("[%s] - Root hit!\n", time.Now())
		return c.JSON(http.StatusOK, serviceInfoConstants.SERVICE_WELCOME)
	})

	// -- Service Info
	e.GET("/service-info", serviceInfoMvc.GetServiceInfo)

	// -- Beacon Info
	e.GET("/info", beaconMvc.BeaconInfo)
	e.GET("/datasets", beaconMvc.GetDatasets,
		// middleware
		gam.OptionalDatasetIdsAttribute)
	e.GET("/filtering_terms", beaconMvc.GetFilteringTerms)

	// -- Query
	e.GET("/query", beaconMvc.BeaconQuery,
		// middleware
		gam.MandateAssemblyIdAttribute,
		gam.ValidateOptionalRegionAttributes,
		gam.OptionalDatasetIdsAttribute,
		gam.ValidateFilterExpressions,
		gam.ValidateResponseGranularityAttributes)

	// Run
	e.Logger.Fatal(e.Start(":" + cfg.Api.Port))
}
