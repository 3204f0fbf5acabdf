package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/kasuboski/gapz/config/mocks"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	t.Run("fail to read in config", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("fake-config.yaml")
		cu.EXPECT().ReadInConfig().Times(1).Return(wantErr)
		c, err := New(cu)
		if err == nil {
			t.Errorf("TestNew() err = %v, want %v", err, wantErr)
		}

		wantConfig := Config{}
		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %v, want %v", c, wantConfig)
		}
	})

	t.Run("fail to unmarshal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		cu := mocks.NewMockConfigUnmarshaler(ctrl)

		wantErr := errors.New("expected testing error")
		cu.EXPECT().ConfigFileUsed().Times(1).Return("")
		cu.EXPECT().Unmarshal(gomock.Any()).Times(1).Return(wantErr)

		_, err := New(cu)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("success with file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("./testing/config.yaml")
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Library: Library{
				TVDir: "/media/tv",
			},
			Metadata: Metadata{
				CacheDir:        "/var/cache/gapz/tvdb",
				InternetEnabled: true,
				ExcludedTypes:   []string{"Movie"},
				SeasonZeroName:  "Specials",
			},
			Storage: Storage{
				FilePath: "gapz.sqlite",
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})

	t.Run("success without file", func(t *testing.T) {
		cu := viper.New()
		cu.SetConfigFile("")
		cu.SetDefault("metadata.internetEnabled", true)
		cu.SetDefault("manager.jobs.seriesReconcile", time.Hour)
		c, err := New(cu)
		if err != nil {
			t.Errorf("TestNew() err = %v, want %v", err, nil)
		}

		wantConfig := Config{
			Metadata: Metadata{
				InternetEnabled: true,
			},
			Manager: Manager{
				Jobs: Jobs{
					SeriesReconcile: time.Hour,
				},
			},
		}

		if !reflect.DeepEqual(c, wantConfig) {
			t.Errorf("TestNew() config = %+v, want %+v", c, wantConfig)
		}
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Run("zero config is valid", func(t *testing.T) {
		assert.NoError(t, Config{}.Validate())
	})

	t.Run("port out of range", func(t *testing.T) {
		c := Config{Server: Server{Port: 70000}}
		assert.Error(t, c.Validate())
	})

	t.Run("negative interval", func(t *testing.T) {
		c := Config{Manager: Manager{Jobs: Jobs{SeriesReconcile: -time.Minute}}}
		assert.Error(t, c.Validate())
	})

	t.Run("cleanup can be disabled", func(t *testing.T) {
		c := Config{Manager: Manager{Jobs: Jobs{CleanupPeriod: -1}}}
		assert.NoError(t, c.Validate())
	})
}
