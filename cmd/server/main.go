/*
 * Copyright (c) 2025, ClubAccess.
 *
 * ClubAccess licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package main

import (
	"flag"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/clubaccess/member-access-service/internal/system/config"
	"github.com/clubaccess/member-access-service/internal/system/constants"
	"github.com/clubaccess/member-access-service/internal/system/database/provider"
	"github.com/clubaccess/member-access-service/internal/system/log"
	"github.com/clubaccess/member-access-service/internal/system/managers"
)

const (
	configFile = "repository/conf/deployment.yaml"
	schemaFile = "dbscripts/schema.sql"
)

func main() {

	serviceHome, initSchema := parseFlags()

	envFiles, _ := filepath.Glob(filepath.Join(serviceHome, "config/*.env"))
	_ = godotenv.Load(envFiles...)

	serviceConfig, err := config.LoadConfig(serviceHome, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.InitializeRuntime(serviceHome, serviceConfig); err != nil {
		stdlog.Fatalf("Failed to initialize service runtime: %v", err)
	}

	if err := log.Init(serviceConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}
	logger := log.GetLogger()

	validateDataSource(serviceConfig)

	if initSchema {
		applySchema(serviceHome)
	}

	serverAddr := fmt.Sprintf("%s:%d", serviceConfig.Addr.Host, serviceConfig.Addr.Port)
	mux := initMultiplexer()
	handler := enableCORS(mux, serviceConfig.Auth.CORSAllowedOrigins)

	ln, err := net.Listen("tcp", serverAddr)
	if err != nil {
		logger.Error("Failed to start listener.", log.Error(err))
		os.Exit(1)
	}
	logger.Info("Member access service started.", log.String("address", serverAddr))

	server := &http.Server{Handler: handler}
	if err := server.Serve(ln); err != nil {
		logger.Error("Failed to serve requests.", log.Error(err))
	}
}

func validateDataSource(cfg *config.Config) {

	ds := cfg.DataSource
	if ds.Hostname == "" || ds.Port == 0 || ds.Name == "" || ds.Username == "" {
		stdlog.Fatal("One or more PostgreSQL configuration values are missing")
	}
}

// initMultiplexer initializes the HTTP multiplexer and registers the services.
func initMultiplexer() *http.ServeMux {

	mux := http.NewServeMux()
	serviceManager := managers.NewServiceManager(mux)

	if err := serviceManager.RegisterServices(constants.ApiBasePath); err != nil {
		log.GetLogger().Error("Failed to register the services.", log.Error(err))
	}

	return mux
}

func enableCORS(next http.Handler, allowedOrigins []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin, allowedOrigins) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
		} else if len(allowedOrigins) == 0 {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if strings.EqualFold(a, origin) {
			return true
		}
	}
	return false
}

func applySchema(serviceHome string) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		stdlog.Fatalf("Failed to connect to the database: %v", err)
	}
	defer dbClient.Close()

	if err := dbClient.InitDatabase(serviceHome, schemaFile); err != nil {
		stdlog.Fatalf("Failed to apply database schema: %v", err)
	}
}

func parseFlags() (string, bool) {

	projectHomeFlag := flag.String("serviceHome", "", "Path to the service home directory")
	initSchemaFlag := flag.Bool("initSchema", false, "Apply the database schema before serving")
	flag.Parse()

	projectHome := *projectHomeFlag
	if projectHome == "" {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", dirErr)
		}
		projectHome = dir
	}

	return projectHome, *initSchemaFlag
}
