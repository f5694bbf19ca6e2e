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

// Command createadmin seeds an operator account. It is meant for first-time
// setup; an existing username is left untouched.
package main

import (
	"flag"
	stdlog "log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubaccess/member-access-service/internal/auth/store"
	"github.com/clubaccess/member-access-service/internal/system/config"
	"github.com/clubaccess/member-access-service/internal/system/constants"
	"github.com/clubaccess/member-access-service/internal/system/log"
)

const configFile = "repository/conf/deployment.yaml"

func main() {

	username := flag.String("username", "admin", "Username for the new account")
	password := flag.String("password", "", "Password for the new account")
	role := flag.String("role", constants.RoleAdmin, "Role for the new account")
	serviceHome := flag.String("serviceHome", "", "Path to the service home directory")
	flag.Parse()

	if *password == "" {
		stdlog.Fatal("A password is required: -password <value>")
	}
	if *role != constants.RoleAdmin && *role != constants.RoleStaff {
		stdlog.Fatalf("Unknown role %q; expected %s or %s", *role, constants.RoleAdmin, constants.RoleStaff)
	}

	home := *serviceHome
	if home == "" {
		dir, err := os.Getwd()
		if err != nil {
			stdlog.Fatalf("Failed to get current working directory: %v", err)
		}
		home = dir
	}

	envFiles, _ := filepath.Glob(filepath.Join(home, "config/*.env"))
	_ = godotenv.Load(envFiles...)

	serviceConfig, err := config.LoadConfig(home, configFile)
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.InitializeRuntime(home, serviceConfig); err != nil {
		stdlog.Fatalf("Failed to initialize service runtime: %v", err)
	}
	if err := log.Init(serviceConfig.Log.LogLevel); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	cost := serviceConfig.Auth.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), cost)
	if err != nil {
		stdlog.Fatalf("Failed to hash password: %v", err)
	}

	userStore := &store.UserStore{}
	created, err := userStore.CreateUser(*username, string(hash), *role)
	if err != nil {
		stdlog.Fatalf("Failed to create user: %v", err)
	}
	if !created {
		stdlog.Printf("User %q already exists; nothing to do", *username)
		return
	}
	stdlog.Printf("Created %s user %q", *role, *username)
}
