package main

import (
	"DrillOps/CronJobs"
	"DrillOps/FiberConfig"
	"DrillOps/Models"
	"fmt"
	"log"
	"os"
)

func main() {
	setupLogging()

	Models.Connect()

	maintenanceChecker := CronJobs.NewMaintenanceChecker(false)
	if err := maintenanceChecker.Start(); err != nil {
		fmt.Printf("Failed to start maintenance checker: %v", err)
	}
	defer maintenanceChecker.Stop()

	FiberConfig.FiberConfig()
}

func setupLogging() {
	// Create logs directory if it doesn't exist
	if err := os.MkdirAll("logs", 0755); err != nil {
		log.Printf("Error creating logs directory: %v\n", err)
		return
	}

	// Set up main application log file
	logFile, err := os.OpenFile("logs/application.log",
		os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)

	if err != nil {
		log.Printf("Error opening log file: %v\n", err)
		return
	}

	// Redirect log output to the file
	log.SetOutput(logFile)
	log.SetFlags(log.Ldate | log.Ltime)
}
