// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/openfga/go-sdk/client"
	"github.com/spf13/cobra"
	corev1 "k8s.io/api/core/v1"
	k8serrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/canonical/org-provisioning-service/internal/authorization"
	"github.com/canonical/org-provisioning-service/internal/logging"
	"github.com/canonical/org-provisioning-service/internal/monitoring"
	"github.com/canonical/org-provisioning-service/internal/openfga"
	"github.com/canonical/org-provisioning-service/internal/tracing"
)

const StoreName = "org-provisioning-service"

// adminGrantClient is the part of the OpenFGA client used to seed operators.
type adminGrantClient interface {
	Check(ctx context.Context, user, relation, object string, tuples ...openfga.Tuple) (bool, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
}

type fgaSetupResult struct {
	StoreId string   `json:"store_id"`
	ModelId string   `json:"model_id"`
	Admins  []string `json:"admins"`
}

// createFgaModelCmd represents the createFgaModel command
var createFgaModelCmd = &cobra.Command{
	Use:   "create-fga-model",
	Short: "Creates the openfga store and model, and seeds provisioning admins",
	Long: `Creates the openfga store (unless --fga-store-id is given) and writes the organization model.
Every --admin subject is granted the admin relation on the privileged group, which the
provisioning API requires from its callers. Subjects that are already admins are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		apiUrl, _ := cmd.Flags().GetString("fga-api-url")
		apiToken, _ := cmd.Flags().GetString("fga-api-token")
		storeId, _ := cmd.Flags().GetString("fga-store-id")
		format, _ := cmd.Flags().GetString("format")
		verbose, _ := cmd.Flags().GetBool("verbose")
		configMapResource, _ := cmd.Flags().GetString("store-k8s-configmap-resource")
		kubeconfigPath, _ := cmd.Flags().GetString("kubeconfig")
		admins, _ := cmd.Flags().GetStringSlice("admin")
		adminGroup, _ := cmd.Flags().GetString("admin-group")

		ctx := cmd.Context()

		fgaClient, err := newSetupClient(apiUrl, apiToken, storeId, verbose)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		result, err := createModel(ctx, fgaClient, storeId)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		result.Admins, err = grantAdmins(ctx, fgaClient, adminGroup, admins)
		if err != nil {
			cmd.PrintErrln(err)
			os.Exit(1)
		}

		if configMapResource != "" {
			if err := updateConfigMap(ctx, kubeconfigPath, configMapResource, result.StoreId, result.ModelId); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to update configmap: %w", err))
				os.Exit(1)
			}
			cmd.Printf("ConfigMap %s updated successfully\n", configMapResource)
		}

		if format == "json" {
			if err := json.NewEncoder(cmd.OutOrStdout()).Encode(result); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to encode output: %v", err))
				os.Exit(1)
			}
			return
		}

		cmd.Printf("Created model: %s\n", result.ModelId)
		if storeId == "" {
			cmd.Printf("Created store: %s\n", result.StoreId)
		}
		for _, admin := range result.Admins {
			cmd.Printf("Granted admin on %s: %s\n", authorization.PrivilegedTuple(adminGroup), admin)
		}
	},
}

func init() {
	rootCmd.AddCommand(createFgaModelCmd)

	createFgaModelCmd.Flags().String("fga-api-url", "", "The openfga API URL")
	createFgaModelCmd.Flags().String("fga-api-token", "", "The openfga API token")
	createFgaModelCmd.Flags().String("fga-store-id", "", "The openfga store to create the model in, if empty one will be created")
	createFgaModelCmd.Flags().String("format", "text", "Output format (text or json)")
	createFgaModelCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")
	createFgaModelCmd.Flags().String("store-k8s-configmap-resource", "", "The configmap resource to store the FGA Store ID and Model ID, format: namespace/name")
	createFgaModelCmd.Flags().String("kubeconfig", "", "Path to the kubeconfig file (optional, defaults to in-cluster config)")
	createFgaModelCmd.Flags().StringSlice("admin", nil, "Subject (user or OAuth2 client id) allowed to provision organizations, repeatable")
	createFgaModelCmd.Flags().String("admin-group", "global", "Privileged group the admins are attached to, must match ADMIN_GROUP")
	createFgaModelCmd.MarkFlagRequired("fga-api-url")
	createFgaModelCmd.MarkFlagRequired("fga-api-token")
}

func newSetupClient(apiUrl, apiToken, storeId string, verbose bool) (*openfga.Client, error) {
	logger := logging.NewNoopLogger()

	scheme, host, err := parseURL(apiUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to parse url: %w", err)
	}

	// no model id yet, it is pinned once written
	return openfga.NewClient(
		openfga.NewConfig(
			scheme,
			host,
			storeId,
			apiToken,
			"",
			verbose,
			tracing.NewNoopTracer(),
			monitoring.NewNoopMonitor(StoreName, logger),
			logger,
		),
	), nil
}

func createModel(ctx context.Context, fgaClient *openfga.Client, storeId string) (*fgaSetupResult, error) {
	if storeId == "" {
		var err error
		if storeId, err = fgaClient.CreateStore(ctx, StoreName); err != nil {
			return nil, fmt.Errorf("failed to create store: %w", err)
		}

		fgaClient.SetStoreID(ctx, storeId)
	}

	authzModel := authorization.NewAuthorizationModelProvider("v0").GetModel()

	modelId, err := fgaClient.WriteModel(
		ctx,
		&client.ClientWriteAuthorizationModelRequest{
			TypeDefinitions: authzModel.TypeDefinitions,
			SchemaVersion:   authzModel.SchemaVersion,
			Conditions:      authzModel.Conditions,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to write model: %w", err)
	}

	fgaClient.SetAuthorizationModelID(ctx, modelId)

	return &fgaSetupResult{StoreId: storeId, ModelId: modelId, Admins: []string{}}, nil
}

// grantAdmins writes the admin relation for every subject that lacks it and
// returns the subjects that were granted.
func grantAdmins(ctx context.Context, fgaClient adminGrantClient, group string, subjects []string) ([]string, error) {
	granted := make([]string, 0, len(subjects))
	object := authorization.PrivilegedTuple(group)

	for _, subject := range subjects {
		subject = strings.TrimSpace(subject)
		if subject == "" {
			continue
		}

		user := authorization.UserTuple(subject)

		admin, err := fgaClient.Check(ctx, user, authorization.ADMIN_RELATION, object)
		if err != nil {
			return granted, fmt.Errorf("failed to check admin %s: %w", subject, err)
		}

		if admin {
			continue
		}

		if err := fgaClient.WriteTuple(ctx, user, authorization.ADMIN_RELATION, object); err != nil {
			return granted, fmt.Errorf("failed to grant admin to %s: %w", subject, err)
		}

		granted = append(granted, subject)
	}

	return granted, nil
}

func parseURL(s string) (string, string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", "", err
	}
	return u.Scheme, u.Host, nil
}

func updateConfigMap(ctx context.Context, kubeconfigPath, configMapResource, storeId, modelId string) error {
	parts := strings.Split(configMapResource, "/")
	if len(parts) != 2 {
		return fmt.Errorf("invalid configmap resource format: %s, expected namespace/name", configMapResource)
	}
	namespace, name := parts[0], parts[1]

	var config *rest.Config
	var err error

	if kubeconfigPath != "" {
		config, err = clientcmd.BuildConfigFromFlags("", kubeconfigPath)
	} else {
		config, err = rest.InClusterConfig()
		if err != nil {
			// Fallback to kubeconfig if in-cluster fails (e.g. running locally without flag)
			loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
			configOverrides := &clientcmd.ConfigOverrides{}
			kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)
			config, err = kubeConfig.ClientConfig()
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	cm, err := clientset.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		if k8serrors.IsNotFound(err) {
			// Try to Create it
			cm = &corev1.ConfigMap{
				ObjectMeta: metav1.ObjectMeta{
					Name:      name,
					Namespace: namespace,
				},
				Data: map[string]string{
					"OPENFGA_STORE_ID":               storeId,
					"OPENFGA_AUTHORIZATION_MODEL_ID": modelId,
				},
			}
			_, err = clientset.CoreV1().ConfigMaps(namespace).Create(ctx, cm, metav1.CreateOptions{})
			if err != nil {
				return fmt.Errorf("failed to create configmap %s: %w", configMapResource, err)
			}
			return nil
		}
		return fmt.Errorf("failed to get configmap %s: %w", configMapResource, err)
	}

	if cm.Data == nil {
		cm.Data = make(map[string]string)
	}

	cm.Data["OPENFGA_STORE_ID"] = storeId
	cm.Data["OPENFGA_AUTHORIZATION_MODEL_ID"] = modelId

	_, err = clientset.CoreV1().ConfigMaps(namespace).Update(ctx, cm, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("failed to update configmap %s: %w", configMapResource, err)
	}

	return nil
}
