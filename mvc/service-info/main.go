package serviceInfo

import (
	"net/http"

	"beacon/api/contexts"
	serviceInfo "beacon/api/models/constants/service-info"

	"github.com/labstack/echo"
)

func GetServiceInfo(c echo.Context) error {
	// Spec: https://github.com/ga4gh-discovery/ga4gh-service-info
	bc := c.(*contexts.BeaconContext)
	cfg := bc.Config

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":          serviceInfo.SERVICE_ID,
		"name":        serviceInfo.SERVICE_NAME,
		"type":        serviceInfo.SERVICE_TYPE,
		"description": serviceInfo.SERVICE_DESCRIPTION,
		"organization": map[string]string{
			"name": cfg.Beacon.OrgName,
			"url":  cfg.Beacon.OrgWelcomeUrl,
		},
		"contactUrl": serviceInfo.SERVICE_CONTACT,
		"version":    serviceInfo.SERVICE_VERSION,
		"beacon": map[string]interface{}{
			"apiVersion": serviceInfo.SERVICE_API_VERSION,
		},
	})
}
