// Command agl runs the agency content and contact API.
package main

import (
	"fmt"
	"os"
)

// @title                       AdsGeniusLab API
// @version                     1.0
// @description                 Bilingual blog, admin authentication and contact form relay.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
